// Package rules decides whether a proposed player input is legal. Rules
// are pure predicates over a game state and an input, registered in a
// fixed order and evaluated with short-circuit semantics: the first
// failing rule's error is the verdict.
package rules

import (
	"errors"
	"fmt"

	"github.com/gridlock-games/gridlock-server/game/engine"
)

// CheckFunc validates one input against a game state. It must not mutate
// the given state; rules that need to look ahead work on a clone.
type CheckFunc func(game *engine.GameState, in engine.PlayerInput) error

// Rule pairs a predicate with the input kinds it applies to.
// engine.InputAll makes a rule apply to every input.
type Rule struct {
	Inputs []engine.InputKind
	Check  CheckFunc
}

func (r Rule) appliesTo(kind engine.InputKind) bool {
	for _, k := range r.Inputs {
		if k == kind || k == engine.InputAll {
			return true
		}
	}
	return false
}

// Checker runs the registered rules in order
type Checker struct {
	rules []Rule
}

// NewChecker builds the standard rule set. Registration order encodes
// priority: cheap structural checks run before movement simulation.
func NewChecker() *Checker {
	return &Checker{rules: []Rule{
		{
			Inputs: []engine.InputKind{engine.InputMovement, engine.InputModifyDistrict, engine.InputNextTurn, engine.InputUndoAction},
			Check:  gameStarted,
		},
		{
			Inputs: []engine.InputKind{engine.InputAll},
			Check:  playersTurn,
		},
		{
			Inputs: []engine.InputKind{engine.InputStartGame, engine.InputModifyEdgeRestrictions, engine.InputModifyDistrict},
			Check:  actorIsOrchestrator,
		},
		{
			Inputs: []engine.InputKind{engine.InputMovement},
			Check:  hasPosition,
		},
		{
			Inputs: []engine.InputKind{engine.InputSetPlayerBusBool},
			Check:  canToggleBus,
		},
		{
			Inputs: []engine.InputKind{engine.InputSetPlayerTrainBool},
			Check:  canToggleTrain,
		},
		{
			Inputs: []engine.InputKind{engine.InputMovement},
			Check:  destinationIsNeighbour,
		},
		{
			Inputs: []engine.InputKind{engine.InputMovement},
			Check:  hasEnoughMoves,
		},
		{
			Inputs: []engine.InputKind{engine.InputMovement},
			Check:  canMoveToNode,
		},
		{
			Inputs: []engine.InputKind{engine.InputModifyEdgeRestrictions},
			Check:  canModifyEdgeRestriction,
		},
	}}
}

// Validate runs every applicable rule in registration order and returns
// the first failure, or nil if the input is legal.
func (c *Checker) Validate(game *engine.GameState, in engine.PlayerInput) error {
	for _, rule := range c.rules {
		if !rule.appliesTo(in.Kind) {
			continue
		}
		if err := rule.Check(game, in); err != nil {
			return err
		}
	}
	return nil
}

func gameStarted(game *engine.GameState, _ engine.PlayerInput) error {
	if game.IsLobby {
		return errors.New("the game has not started yet")
	}
	return nil
}

func playersTurn(game *engine.GameState, in engine.PlayerInput) error {
	if game.IsLobby || in.Kind == engine.InputLeaveGame {
		return nil
	}
	player, err := game.PlayerByID(in.PlayerID)
	if err != nil {
		return err
	}
	if game.CurrentTurn != player.Role {
		return errors.New("it is not the current player's turn")
	}
	return nil
}

func actorIsOrchestrator(game *engine.GameState, in engine.PlayerInput) error {
	player, err := game.PlayerByID(in.PlayerID)
	if err != nil {
		return err
	}
	if player.Role != engine.RoleOrchestrator {
		return errors.New("the player is not the orchestrator of the game")
	}
	return nil
}

func hasPosition(game *engine.GameState, in engine.PlayerInput) error {
	player, err := game.PlayerByID(in.PlayerID)
	if err != nil {
		return err
	}
	if player.PositionNodeID == nil {
		return errors.New("the player does not have a position")
	}
	return nil
}

func canToggleBus(game *engine.GameState, in engine.PlayerInput) error {
	player, err := game.PlayerByID(in.PlayerID)
	if err != nil {
		return err
	}
	if in.RelatedBool == nil {
		return errors.New("a bus toggle input needs a related bool")
	}
	if player.IsTrain {
		return errors.New("a train cannot become a bus")
	}
	if player.PositionNodeID == nil {
		return errors.New("the player does not have a position")
	}
	node, err := game.Board.NodeByID(*player.PositionNodeID)
	if err != nil {
		return err
	}
	if !node.IsParkingSpot {
		return errors.New("bus mode can only be toggled on a parking spot")
	}
	return nil
}

func canToggleTrain(game *engine.GameState, in engine.PlayerInput) error {
	player, err := game.PlayerByID(in.PlayerID)
	if err != nil {
		return err
	}
	if in.RelatedBool == nil {
		return errors.New("a train toggle input needs a related bool")
	}
	if player.IsBus {
		return errors.New("a bus cannot become a train")
	}
	if player.PositionNodeID == nil {
		return errors.New("the player does not have a position")
	}
	node, err := game.Board.NodeByID(*player.PositionNodeID)
	if err != nil {
		return err
	}
	if !node.IsConnectedToRail {
		return errors.New("train mode can only be toggled on a rail station")
	}
	return nil
}

func destinationIsNeighbour(game *engine.GameState, in engine.PlayerInput) error {
	player, err := game.PlayerByID(in.PlayerID)
	if err != nil {
		return err
	}
	if player.PositionNodeID == nil {
		return errors.New("the player does not have a position")
	}
	if in.RelatedNodeID == nil {
		return errors.New("a movement input needs a related node id")
	}
	ok, err := game.Board.AreNeighbours(*player.PositionNodeID, *in.RelatedNodeID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("node %d is not a neighbour of the player's position", *in.RelatedNodeID)
	}
	return nil
}

// hasEnoughMoves applies the move to a clone and rejects it if the
// player's balance would end up negative.
func hasEnoughMoves(game *engine.GameState, in engine.PlayerInput) error {
	player, err := game.PlayerByID(in.PlayerID)
	if err != nil {
		return err
	}
	if player.RemainingMoves == 0 {
		return errors.New("the player has no remaining moves")
	}
	if in.RelatedNodeID == nil {
		return errors.New("a movement input needs a related node id")
	}

	trial := game.Clone()
	if err := trial.MovePlayer(in.PlayerID, *in.RelatedNodeID); err != nil {
		return err
	}
	moved, err := trial.PlayerByID(in.PlayerID)
	if err != nil {
		return err
	}
	if moved.RemainingMoves < 0 {
		return fmt.Errorf("the player does not have enough remaining moves, the move would leave %d", moved.RemainingMoves)
	}
	return nil
}

func canMoveToNode(game *engine.GameState, in engine.PlayerInput) error {
	player, err := game.PlayerByID(in.PlayerID)
	if err != nil {
		return err
	}
	if player.PositionNodeID == nil {
		return errors.New("the player does not have a position")
	}
	if in.RelatedNodeID == nil {
		return errors.New("a movement input needs a related node id")
	}
	toNodeID := *in.RelatedNodeID
	edges := game.Board.EdgesOf(*player.PositionNodeID)

	if player.IsBus {
		for _, e := range edges {
			if e.To == toNodeID && e.Restriction != nil && *e.Restriction == engine.RestrictionParkAndRide {
				return nil
			}
		}
		return fmt.Errorf("node %d is not connected by a park & ride road, a bus cannot move there", toNodeID)
	}

	if player.IsTrain {
		for _, e := range edges {
			if e.To == toNodeID && e.ConnectedThroughRail {
				return nil
			}
		}
		return fmt.Errorf("node %d is not connected through the railway, a train cannot move there", toNodeID)
	}

	var edge *engine.Edge
	for _, e := range edges {
		if e.To == toNodeID {
			edge = &e
			break
		}
	}
	if edge == nil {
		return fmt.Errorf("node %d is not a neighbour of node %d", toNodeID, *player.PositionNodeID)
	}

	if edge.Restriction != nil {
		if player.ObjectiveCard == nil {
			return fmt.Errorf("player %s does not have an objective card, access to the restricted road cannot be checked", player.Name)
		}
		if !player.ObjectiveCard.HasVehicleType(*edge.Restriction) {
			return fmt.Errorf("player %s does not have access to the %s road towards node %d", player.Name, *edge.Restriction, toNodeID)
		}
		return nil
	}

	if err := canEnterDistrict(game, player, *edge); err != nil {
		return err
	}

	for _, e := range edges {
		if e.To == toNodeID && e.Restriction != nil && *e.Restriction == engine.RestrictionParkAndRide {
			return errors.New("the road is reserved for park & ride buses")
		}
	}
	return nil
}

// canEnterDistrict enforces access modifiers: when a district carries any
// access modifier, entry requires a matching vehicle type on the player's
// objective card.
func canEnterDistrict(game *engine.GameState, player engine.Player, edge engine.Edge) error {
	if player.ObjectiveCard == nil {
		return errors.New("the player does not have an objective card")
	}
	hasModifier := false
	for _, m := range game.DistrictModifiers {
		if m.District != edge.District || m.Kind != engine.ModifierAccess {
			continue
		}
		if m.VehicleType == nil {
			return errors.New("there is no vehicle type on the access modifier")
		}
		hasModifier = true
		if player.ObjectiveCard.HasVehicleType(*m.VehicleType) {
			return nil
		}
	}
	if !hasModifier {
		return nil
	}
	return errors.New("the player does not have the required vehicle type to access this district")
}

func canModifyEdgeRestriction(game *engine.GameState, in engine.PlayerInput) error {
	if in.EdgeRestriction == nil {
		return errors.New("an edge restriction input needs an edge restriction")
	}
	er := *in.EdgeRestriction

	edgesOne := game.Board.EdgesOf(er.NodeOne)
	if edgesOne == nil {
		return fmt.Errorf("node %d has no neighbours and can therefore not carry restrictions", er.NodeOne)
	}
	edgesTwo := game.Board.EdgesOf(er.NodeTwo)
	if edgesTwo == nil {
		return fmt.Errorf("node %d has no neighbours and can therefore not carry restrictions", er.NodeTwo)
	}

	if er.Kind == engine.RestrictionParkAndRide {
		return canModifyParkAndRide(game, er, edgesOne, edgesTwo)
	}
	return canModifyPlainRestriction(er, edgesOne)
}

// canModifyPlainRestriction checks that the restriction's presence on the
// edge is consistent with the delete flag.
func canModifyPlainRestriction(er engine.EdgeRestriction, edgesOne []engine.Edge) error {
	exists := false
	for _, e := range edgesOne {
		if e.To == er.NodeTwo && e.Restriction != nil && *e.Restriction == er.Kind {
			exists = true
			break
		}
	}
	if exists {
		if er.Delete {
			return nil
		}
		return fmt.Errorf("the %s restriction already exists on the edge between node %d and node %d", er.Kind, er.NodeOne, er.NodeTwo)
	}
	if er.Delete {
		return fmt.Errorf("the %s restriction does not exist on the edge between node %d and node %d", er.Kind, er.NodeOne, er.NodeTwo)
	}
	return nil
}

// canModifyParkAndRide enforces the park & ride network rules: new edges
// must touch a parking spot or an existing park & ride edge, and deleting
// may not cut a node out of a larger park & ride chain.
func canModifyParkAndRide(game *engine.GameState, er engine.EdgeRestriction, edgesOne, edgesTwo []engine.Edge) error {
	if er.Delete {
		if countParkAndRide(edgesOne) < 2 || countParkAndRide(edgesTwo) < 2 {
			return nil
		}
		return errors.New("a park & ride edge connected to more than one other park & ride edge cannot be deleted")
	}

	nodeOne, err := game.Board.NodeByID(er.NodeOne)
	if err != nil {
		return fmt.Errorf("%w, cannot check whether park & ride can be placed here", err)
	}
	nodeTwo, err := game.Board.NodeByID(er.NodeTwo)
	if err != nil {
		return fmt.Errorf("%w, cannot check whether park & ride can be placed here", err)
	}
	if nodeOne.IsParkingSpot || nodeTwo.IsParkingSpot {
		return nil
	}
	if countParkAndRide(edgesOne) > 0 || countParkAndRide(edgesTwo) > 0 {
		return nil
	}
	return fmt.Errorf("cannot place park & ride between nodes %d and %d, there is no adjacent parking spot or park & ride edge", er.NodeOne, er.NodeTwo)
}

func countParkAndRide(edges []engine.Edge) int {
	count := 0
	for _, e := range edges {
		if e.Restriction != nil && *e.Restriction == engine.RestrictionParkAndRide {
			count++
		}
	}
	return count
}
