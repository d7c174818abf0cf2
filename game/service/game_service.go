package service

import (
	"context"

	"github.com/gridlock-games/gridlock-server/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Player Management
	CreatePlayer(ctx context.Context, name string) (*PlayerInfo, error)
	CheckIn(ctx context.Context, playerID int) error
	DeletePlayer(ctx context.Context, playerID int) error

	// Game Operations
	CreateGame(ctx context.Context, req CreateGameRequest) (*engine.GameState, error)
	JoinGame(ctx context.Context, gameID int, req JoinGameRequest) (*engine.GameState, error)
	SubmitInput(ctx context.Context, in engine.PlayerInput) (*engine.GameState, error)

	// Game State
	GetGame(ctx context.Context, gameID int) (*engine.GameState, error)
	ListLobbies(ctx context.Context) ([]*engine.GameState, error)

	// Reference Data
	ListSituationCards(ctx context.Context) ([]engine.SituationCard, error)
}

// GameRegistry defines the operations the service needs from the live
// game store. *controller.Controller satisfies it.
type GameRegistry interface {
	GeneratePlayerID() (int, error)
	UpdateCheckIn(playerID int) error
	DeletePlayer(playerID int) error
	CreateNewGame(info engine.NewGameInfo) (*engine.GameState, error)
	JoinGame(gameID int, player engine.Player) (*engine.GameState, error)
	GetGameByID(gameID int) (*engine.GameState, error)
	GetAllLobbies() []*engine.GameState
	HandlePlayerInput(in engine.PlayerInput) (*engine.GameState, error)
}
