package service

import (
	"context"
	"strings"

	"github.com/gridlock-games/gridlock-server/game/apperr"
	"github.com/gridlock-games/gridlock-server/game/catalog"
	"github.com/gridlock-games/gridlock-server/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	registry GameRegistry
}

// NewGameService creates a new game service instance
func NewGameService(registry GameRegistry) GameService {
	return &gameServiceImpl{registry: registry}
}

// CreatePlayer issues a fresh player identifier for the given name
func (s *gameServiceImpl) CreatePlayer(ctx context.Context, name string) (*PlayerInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Preconditionf("a player needs a name")
	}
	id, err := s.registry.GeneratePlayerID()
	if err != nil {
		return nil, err
	}
	return &PlayerInfo{ID: id, Name: name}, nil
}

// CheckIn refreshes the player's liveness stamp
func (s *gameServiceImpl) CheckIn(ctx context.Context, playerID int) error {
	return s.registry.UpdateCheckIn(playerID)
}

// DeletePlayer unregisters the identifier and removes the player from
// any game they are in
func (s *gameServiceImpl) DeletePlayer(ctx context.Context, playerID int) error {
	return s.registry.DeletePlayer(playerID)
}

// CreateGame opens a new lobby hosted by the given player
func (s *gameServiceImpl) CreateGame(ctx context.Context, req CreateGameRequest) (*engine.GameState, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Preconditionf("a game needs a name")
	}
	host := engine.NewPlayer(req.HostID, req.HostName)
	return s.registry.CreateNewGame(engine.NewGameInfo{Host: host, Name: req.Name})
}

// JoinGame adds the player to the lobby's roster
func (s *gameServiceImpl) JoinGame(ctx context.Context, gameID int, req JoinGameRequest) (*engine.GameState, error) {
	player := engine.NewPlayer(req.PlayerID, req.PlayerName)
	return s.registry.JoinGame(gameID, player)
}

// SubmitInput validates and applies one player input
func (s *gameServiceImpl) SubmitInput(ctx context.Context, in engine.PlayerInput) (*engine.GameState, error) {
	return s.registry.HandlePlayerInput(in)
}

// GetGame returns a snapshot of the game with the given ID
func (s *gameServiceImpl) GetGame(ctx context.Context, gameID int) (*engine.GameState, error) {
	return s.registry.GetGameByID(gameID)
}

// ListLobbies returns every game still waiting in lobby mode
func (s *gameServiceImpl) ListLobbies(ctx context.Context) ([]*engine.GameState, error) {
	return s.registry.GetAllLobbies(), nil
}

// ListSituationCards returns the full card catalogue
func (s *gameServiceImpl) ListSituationCards(ctx context.Context) ([]engine.SituationCard, error) {
	return catalog.All(), nil
}
