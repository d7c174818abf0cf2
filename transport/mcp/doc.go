// Package mcp provides a Model Context Protocol surface for the game server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for player, lobby and input operations
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_player: Register a player and receive a unique id
//   - create_game: Open a new lobby
//   - join_game: Join an existing lobby
//   - list_lobbies: List games waiting for players
//   - game_state: Get a formatted game snapshot
//   - player_input: Submit any game input
//   - list_situation_cards: List the scenario card catalogue
//
// Architecture:
//
// The MCP server is a thin proxy: every tool call is translated into a
// REST request against the same API the web client uses, so the rule
// engine and controller stay the single source of truth.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.NewStdioServer(client.GetMCPServer()).Listen(ctx, os.Stdin, os.Stdout)
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Host or join games alongside human players
//   - Act as the orchestrator reshaping the city
//   - Plan deliveries from the formatted game snapshots
package mcp
