// Package controller owns the live collection of games and the registry
// of issued player identifiers. Every request runs its whole
// read-validate-mutate sequence under one exclusive lock, so requests are
// serialized and each either takes full effect or none at all.
package controller

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/gridlock-games/gridlock-server/game/apperr"
	"github.com/gridlock-games/gridlock-server/game/catalog"
	"github.com/gridlock-games/gridlock-server/game/engine"
	"github.com/gridlock-games/gridlock-server/game/rules"
)

// DefaultCheckInTimeout is how long a player identifier survives without
// a check-in before it is purged together with its players.
const DefaultCheckInTimeout = time.Minute

var (
	ErrUnknownPlayerID = errors.New("the player id was not issued by this server")
	ErrIDExhausted     = errors.New("failed to generate an unused player id")
)

// Controller serializes all access to the games collection and the
// identifier registry behind a single mutex.
type Controller struct {
	mu             sync.Mutex
	games          map[int]*engine.GameState
	playerIDs      map[int]time.Time
	checker        *rules.Checker
	checkInTimeout time.Duration
}

// New creates a controller with the given check-in timeout. A zero or
// negative timeout falls back to DefaultCheckInTimeout.
func New(checkInTimeout time.Duration) *Controller {
	if checkInTimeout <= 0 {
		checkInTimeout = DefaultCheckInTimeout
	}
	return &Controller{
		games:          make(map[int]*engine.GameState),
		playerIDs:      make(map[int]time.Time),
		checker:        rules.NewChecker(),
		checkInTimeout: checkInTimeout,
	}
}

// GeneratePlayerID issues a fresh unique player identifier and registers
// it with the current time as its first check-in.
func (c *Controller) GeneratePlayerID() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collectGarbage()

	for attempt := 0; attempt < 100000; attempt++ {
		id := int(rand.Int31())
		if id == 0 {
			continue
		}
		if _, taken := c.playerIDs[id]; taken {
			continue
		}
		c.playerIDs[id] = time.Now()
		return id, nil
	}
	return 0, apperr.WrapInternal("failed to make a new player id", ErrIDExhausted)
}

// CreateNewGame creates a lobby with the given host and returns a
// snapshot of it.
func (c *Controller) CreateNewGame(info engine.NewGameInfo) (*engine.GameState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collectGarbage()

	if _, registered := c.playerIDs[info.Host.UniqueID]; !registered {
		return nil, apperr.WrapPrecondition("a player with an id not issued by the server cannot create a lobby", ErrUnknownPlayerID)
	}
	for _, game := range c.games {
		if game.ContainsPlayer(info.Host.UniqueID) {
			return nil, apperr.Preconditionf("a player already connected to a game cannot create a new one")
		}
	}

	game := engine.NewGameState(info.Name, c.unusedGameID())
	if err := game.AssignPlayerToGame(info.Host); err != nil {
		return nil, apperr.WrapPrecondition("failed to create new game", err)
	}
	c.games[game.ID] = game
	return game.Clone(), nil
}

// JoinGame adds the player to the game's roster and returns a snapshot.
func (c *Controller) JoinGame(gameID int, player engine.Player) (*engine.GameState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collectGarbage()

	if _, registered := c.playerIDs[player.UniqueID]; !registered {
		return nil, apperr.WrapPrecondition("a player with an id not issued by the server cannot join a game", ErrUnknownPlayerID)
	}
	game, ok := c.games[gameID]
	if !ok {
		return nil, apperr.NotFoundf("there is no game with id %d", gameID)
	}
	if err := game.AssignPlayerToGame(player); err != nil {
		return nil, apperr.WrapPrecondition("failed to join game", err)
	}
	return game.Clone(), nil
}

// GetGameByID returns a snapshot of the game with the given ID.
func (c *Controller) GetGameByID(gameID int) (*engine.GameState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, ok := c.games[gameID]
	if !ok {
		return nil, apperr.NotFoundf("there is no game with id %d", gameID)
	}
	return game.Clone(), nil
}

// GetAllLobbies returns snapshots of every game still in lobby mode.
func (c *Controller) GetAllLobbies() []*engine.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collectGarbage()

	lobbies := make([]*engine.GameState, 0)
	for _, game := range c.games {
		if game.IsLobby {
			lobbies = append(lobbies, game.Clone())
		}
	}
	return lobbies
}

// RemovePlayerFromGame removes the player from whatever game holds them.
// Games whose roster empties are dropped.
func (c *Controller) RemovePlayerFromGame(playerID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, game := range c.games {
		if !game.ContainsPlayer(playerID) {
			continue
		}
		game.RemovePlayer(playerID)
		if len(game.Players) == 0 {
			delete(c.games, id)
		}
	}
}

// DeletePlayer unregisters the identifier and removes the player from
// whatever game holds them. Games whose roster empties are dropped.
func (c *Controller) DeletePlayer(playerID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, registered := c.playerIDs[playerID]; !registered {
		return apperr.NotFoundf("there is no player with id %d", playerID)
	}
	delete(c.playerIDs, playerID)
	for id, game := range c.games {
		if !game.ContainsPlayer(playerID) {
			continue
		}
		game.RemovePlayer(playerID)
		if len(game.Players) == 0 {
			delete(c.games, id)
		}
	}
	return nil
}

// UpdateCheckIn refreshes the identifier's liveness stamp and purges any
// identifiers whose stamp has expired.
func (c *Controller) UpdateCheckIn(playerID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, registered := c.playerIDs[playerID]; !registered {
		return apperr.NotFoundf("there is no player with id %d", playerID)
	}
	c.playerIDs[playerID] = time.Now()
	c.collectGarbage()
	return nil
}

// CleanupInactivePlayers purges expired identifiers and empty games.
// It returns how many identifiers were removed. The server calls this
// periodically from a background routine; every mutating request also
// triggers the same sweep.
func (c *Controller) CleanupInactivePlayers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collectGarbage()
}

// HandlePlayerInput validates and applies one player input. On success
// the returned snapshot includes a freshly computed legal-destination set
// for the acting player; on failure the game is untouched.
func (c *Controller) HandlePlayerInput(in engine.PlayerInput) (*engine.GameState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collectGarbage()

	if _, registered := c.playerIDs[in.PlayerID]; !registered {
		return nil, apperr.NotFoundf("there is no player with id %d", in.PlayerID)
	}
	game, ok := c.games[in.GameID]
	if !ok {
		return nil, apperr.NotFoundf("there is no game with id %d", in.GameID)
	}

	trial, err := replayPending(game)
	if err != nil {
		return nil, apperr.WrapInternal("failed to replay the pending actions, no actions are applied to the game", err)
	}
	if err := c.checker.Validate(trial, in); err != nil {
		return nil, apperr.WrapRule("invalid input", err)
	}

	// Work on a copy so a failing structural input leaves the
	// authoritative game untouched.
	next := game.Clone()
	if err := c.apply(next, in); err != nil {
		return nil, err
	}
	c.updateLegalNodes(next)
	c.games[in.GameID] = next

	if len(next.Players) == 0 {
		delete(c.games, in.GameID)
		return next.Clone(), nil
	}
	return next.Clone(), nil
}

// apply mutates the game with the validated input. Structural inputs take
// effect immediately; turn-scoped inputs are queued for commit at next
// turn.
func (c *Controller) apply(game *engine.GameState, in engine.PlayerInput) error {
	switch in.Kind {
	case engine.InputChangeRole:
		if in.RelatedRole == nil {
			return apperr.Preconditionf("a change role input needs a related role")
		}
		if err := game.AssignPlayerRole(in.PlayerID, *in.RelatedRole); err != nil {
			return apperr.WrapPrecondition("failed to change role", err)
		}
		return nil

	case engine.InputStartGame:
		if err := game.StartGame(); err != nil {
			return apperr.WrapPrecondition("failed to start game", err)
		}
		game.Actions = nil
		return nil

	case engine.InputAssignSituationCard:
		if in.SituationCardID == nil {
			return apperr.Preconditionf("an assign situation card input needs a card id")
		}
		card, err := catalog.Lookup(*in.SituationCardID)
		if err != nil {
			return apperr.NotFoundf("failed to assign situation card: %v", err)
		}
		game.UpdateSituationCard(card)
		return nil

	case engine.InputLeaveGame:
		game.RemovePlayer(in.PlayerID)
		return nil

	case engine.InputNextTurn:
		// Commit the whole pending queue, then rotate.
		for _, action := range game.Actions {
			if err := game.ApplyAction(action); err != nil {
				return apperr.WrapInternal("failed to commit a pending action", err)
			}
		}
		game.Actions = nil
		if !game.IsLobby {
			if err := game.UpdateObjectiveStatus(); err != nil {
				return apperr.WrapInternal("failed to update objective status", err)
			}
		}
		game.NextPlayerTurn()
		return nil

	case engine.InputUndoAction:
		if len(game.Actions) > 0 {
			game.Actions = game.Actions[:len(game.Actions)-1]
		}
		return nil

	case engine.InputMovement, engine.InputModifyDistrict, engine.InputModifyEdgeRestrictions,
		engine.InputSetPlayerBusBool, engine.InputSetPlayerTrainBool:
		game.Actions = append(game.Actions, in)
		return nil

	default:
		return apperr.Preconditionf("unknown input kind %q", in.Kind)
	}
}

// updateLegalNodes recomputes the acting player's legal destinations by
// probing a synthetic movement input per outgoing edge against the
// pending-replayed state.
func (c *Controller) updateLegalNodes(game *engine.GameState) {
	game.LegalNodes = []int{}
	if game.IsLobby {
		return
	}

	var acting *engine.Player
	for i := range game.Players {
		if game.Players[i].Role == game.CurrentTurn {
			acting = &game.Players[i]
			break
		}
	}
	if acting == nil {
		return
	}

	trial, err := replayPending(game)
	if err != nil {
		return
	}
	current, err := trial.PlayerByID(acting.UniqueID)
	if err != nil || current.PositionNodeID == nil {
		return
	}

	for _, edge := range trial.Board.EdgesOf(*current.PositionNodeID) {
		to := edge.To
		probe := engine.PlayerInput{
			PlayerID:      acting.UniqueID,
			GameID:        game.ID,
			Kind:          engine.InputMovement,
			RelatedNodeID: &to,
		}
		if c.checker.Validate(trial, probe) == nil {
			game.LegalNodes = append(game.LegalNodes, to)
		}
	}
}

// replayPending applies the game's queued actions to a clone, producing
// the would-be state the rule engine validates against.
func replayPending(game *engine.GameState) (*engine.GameState, error) {
	trial := game.Clone()
	for _, action := range trial.Actions {
		if err := trial.ApplyAction(action); err != nil {
			return nil, err
		}
	}
	return trial, nil
}

// collectGarbage purges expired player identifiers, removes their players
// from every game and drops games whose roster emptied. Callers must hold
// the lock.
func (c *Controller) collectGarbage() int {
	cutoff := time.Now().Add(-c.checkInTimeout)
	removed := 0
	for id, lastSeen := range c.playerIDs {
		if lastSeen.Before(cutoff) {
			delete(c.playerIDs, id)
			removed++
			for gameID, game := range c.games {
				if game.ContainsPlayer(id) {
					game.RemovePlayer(id)
					if len(game.Players) == 0 {
						delete(c.games, gameID)
					}
				}
			}
		}
	}
	for gameID, game := range c.games {
		if len(game.Players) == 0 {
			delete(c.games, gameID)
		}
	}
	return removed
}

func (c *Controller) unusedGameID() int {
	id := int(rand.Int31())
	for {
		if _, taken := c.games[id]; !taken && id != 0 {
			return id
		}
		id = int(rand.Int31())
	}
}
