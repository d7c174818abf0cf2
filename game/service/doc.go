// Package service provides the business logic layer between the
// transport surfaces and the game controller.
//
// The service package implements:
//   - Player identifier issuing and liveness check-ins
//   - Lobby creation, joining and listing
//   - Player input submission
//   - Situation card catalogue access
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. GameRegistry is what the service needs from the live game
// store; the controller package provides the production implementation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the controller, translating transport-shaped requests into
// controller operations. It holds no state of its own; all games and
// player identifiers live behind the registry.
//
// Usage:
//
//	ctrl := controller.New(controller.DefaultCheckInTimeout)
//	gameService := service.NewGameService(ctrl)
//
//	// Issue a player id and open a lobby
//	player, err := gameService.CreatePlayer(ctx, "Hilde")
//	if err != nil {
//		log.Fatal(err)
//	}
//	game, err := gameService.CreateGame(ctx, service.CreateGameRequest{
//		HostID:   player.ID,
//		HostName: player.Name,
//		Name:     "Tuesday night",
//	})
package service
