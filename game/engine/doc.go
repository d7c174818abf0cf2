// Package engine provides the core simulation for the Gridlock board game.
//
// The engine package implements the game mechanics including:
//   - The city board: nodes, districts and weighted road/rail edges
//   - Per-turn movement costs driven by district traffic levels
//   - Situation cards, objective cards and district modifiers
//   - Game state transitions between lobby and active rounds
//
// Core Types:
//
// Board is the city graph with mutable edge annotations (restrictions and
// one-way closures). GameState is one game's complete snapshot: roster,
// turn holder, pending action queue and the game's own Board instance.
// PlayerInput is the closed set of actions players and the orchestrator
// can propose.
//
// Usage:
//
//	game := engine.NewGameState("Friday session", 42)
//	if err := game.AssignPlayerToGame(engine.NewPlayer(1, "Ada")); err != nil {
//		log.Fatal(err)
//	}
//	game.UpdateSituationCard(card)
//	if err := game.StartGame(); err != nil {
//		log.Fatal(err)
//	}
//
// Game Rules:
//
// Players move vehicles between nodes, picking up and delivering cargo
// under access constraints, while the orchestrator disrupts traffic with
// situation cards, district modifiers and edge restrictions. The first
// move into a district each turn pays that district's entry cost; moving
// within it afterwards pays only the edge cost. Legality of a proposed
// input is decided by the rules package before anything is committed.
package engine
