// Package websocket provides real-time game state broadcasting.
//
// The websocket package implements:
//   - Game-aware WebSocket connections
//   - Automatic state broadcasting on changes
//   - Connection lifecycle management
//   - Message routing and handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded and carry the complete GameState
// after each accepted player input, tagged with the game id and an event
// name ("state_update"). Incoming client messages are currently ignored;
// inputs travel over the REST surface.
//
// Game Integration:
//
// Clients specify the game they want to watch via query parameter
// (?game=42) when establishing the connection. State updates are
// broadcast only to clients watching the same game.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after an accepted input
//	hub.BroadcastToGame(game.ID, game)
//
// Connection Lifecycle:
//
// 1. Client connects with a game id
// 2. Connection registered with hub
// 3. Client receives state updates as inputs are accepted
// 4. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
