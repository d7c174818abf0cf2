// Package api provides the HTTP REST surface of the game server.
//
// The api package implements:
//   - RESTful endpoints for players, games and inputs
//   - Liveness check-ins for issued player identifiers
//   - Situation card catalogue listing
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Player Management:
//   - POST /api/players - Issue a new player identifier
//   - GET /api/players/{id}/check-in - Refresh the player's liveness stamp
//   - DELETE /api/players/{id} - Unregister the player
//
// Game Operations:
//   - POST /api/games - Create a new lobby
//   - GET /api/games/{id} - Get a game snapshot
//   - POST /api/games/{id}/join - Join a lobby
//   - POST /api/games/input - Submit a player input
//   - GET /api/lobbies - List open lobbies
//
// Reference Data:
//   - GET /api/situation-cards - List the card catalogue
//
// WebSocket:
//   - GET /ws?game={id} - Subscribe to state updates for a game
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Player inputs are sent as POST
// with a JSON body:
//
//	{
//	  "player_id": 123,
//	  "game_id": 456,
//	  "kind": "movement",
//	  "related_node_id": 10
//	}
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Unknown games and players map to 404, rejected inputs and failed
// preconditions to 400, everything else to 500.
package api
