package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

// Sentinel errors callers can test for with errors.Is.
var (
	ErrGameFull        = errors.New("the game is full")
	ErrPlayerNotFound  = errors.New("there is no player in the game with the given id")
	ErrDuplicatePlayer = errors.New("a player that is already assigned to a game cannot be assigned again")
	ErrRoleTaken       = errors.New("there is already a player with this role")
	ErrNoSituationCard = errors.New("the game does not have a situation card")
)

// GameState is one game's complete mutable snapshot. Actions holds the
// turn's pending queue and AccessedDistricts the districts the current
// turn has already paid entry for; neither is serialized.
type GameState struct {
	ID                int                `json:"id"`
	Name              string             `json:"name"`
	Players           []Player           `json:"players"`
	IsLobby           bool               `json:"is_lobby"`
	CurrentTurn       Role               `json:"current_players_turn"`
	DistrictModifiers []DistrictModifier `json:"district_modifiers"`
	Actions           []PlayerInput      `json:"-"`
	AccessedDistricts []District         `json:"-"`
	Board             *Board             `json:"-"`
	SituationCard     *SituationCard     `json:"situation_card,omitempty"`
	EdgeRestrictions  []EdgeRestriction  `json:"edge_restrictions"`
	LegalNodes        []int              `json:"legal_nodes"`

	// baseCosts keeps the catalogue's unmodified traffic table so that
	// recomputing traffic under access modifiers always starts from the
	// card's original values.
	baseCosts []DistrictCost
}

// NewGameState creates an empty lobby with the default board.
func NewGameState(name string, gameID int) *GameState {
	return &GameState{
		ID:          gameID,
		Name:        name,
		IsLobby:     true,
		CurrentTurn: RoleOrchestrator,
		Board:       DefaultBoard(),
	}
}

// Clone returns a deep copy, pending queue included. Controllers replay
// queued actions onto clones to answer "what would happen if" without
// touching the authoritative state.
func (gs *GameState) Clone() *GameState {
	out := &GameState{
		ID:                gs.ID,
		Name:              gs.Name,
		IsLobby:           gs.IsLobby,
		CurrentTurn:       gs.CurrentTurn,
		DistrictModifiers: append([]DistrictModifier(nil), gs.DistrictModifiers...),
		Actions:           append([]PlayerInput(nil), gs.Actions...),
		AccessedDistricts: append([]District(nil), gs.AccessedDistricts...),
		EdgeRestrictions:  append([]EdgeRestriction(nil), gs.EdgeRestrictions...),
		LegalNodes:        append([]int(nil), gs.LegalNodes...),
		baseCosts:         append([]DistrictCost(nil), gs.baseCosts...),
	}
	out.Players = make([]Player, len(gs.Players))
	for i, p := range gs.Players {
		out.Players[i] = p.Clone()
	}
	if gs.Board != nil {
		out.Board = gs.Board.Clone()
	}
	if gs.SituationCard != nil {
		card := gs.SituationCard.Clone()
		out.SituationCard = &card
	}
	return out
}

// ContainsPlayer reports whether a player with the unique ID is in the game.
func (gs *GameState) ContainsPlayer(uniqueID int) bool {
	for _, p := range gs.Players {
		if p.UniqueID == uniqueID {
			return true
		}
	}
	return false
}

// PlayerByID returns a copy of the player with the given unique ID.
func (gs *GameState) PlayerByID(uniqueID int) (Player, error) {
	for _, p := range gs.Players {
		if p.UniqueID == uniqueID {
			return p.Clone(), nil
		}
	}
	return Player{}, ErrPlayerNotFound
}

// AssignPlayerToGame adds the player to the roster as undecided.
func (gs *GameState) AssignPlayerToGame(player Player) error {
	if len(gs.Players) >= MaxPlayerCount {
		return ErrGameFull
	}
	if gs.ContainsPlayer(player.UniqueID) {
		return ErrDuplicatePlayer
	}
	player.Role = RoleUndecided
	gameID := gs.ID
	player.ConnectedGameID = &gameID
	gs.Players = append(gs.Players, player)
	return nil
}

// AssignPlayerRole seats the player in the given role. Every role except
// undecided may be held by at most one player.
func (gs *GameState) AssignPlayerRole(playerID int, role Role) error {
	if role != RoleUndecided {
		for _, p := range gs.Players {
			if p.Role == role {
				return ErrRoleTaken
			}
		}
	}
	for i := range gs.Players {
		if gs.Players[i].UniqueID == playerID {
			gs.Players[i].Role = role
			return nil
		}
	}
	return ErrPlayerNotFound
}

// SetPlayerBus switches the player in or out of bus mode.
func (gs *GameState) SetPlayerBus(playerID int, isBus bool) {
	for i := range gs.Players {
		if gs.Players[i].UniqueID == playerID {
			gs.Players[i].IsBus = isBus
		}
	}
}

// SetPlayerTrain switches the player in or out of train mode.
func (gs *GameState) SetPlayerTrain(playerID int, isTrain bool) {
	for i := range gs.Players {
		if gs.Players[i].UniqueID == playerID {
			gs.Players[i].IsTrain = isTrain
		}
	}
}

// RemovePlayer drops the player from the roster. If the orchestrator
// leaves, the first remaining player is promoted and loses any objective
// card.
func (gs *GameState) RemovePlayer(playerID int) {
	kept := gs.Players[:0]
	for _, p := range gs.Players {
		if p.UniqueID != playerID {
			kept = append(kept, p)
		}
	}
	gs.Players = kept

	for _, p := range gs.Players {
		if p.Role == RoleOrchestrator {
			return
		}
	}
	if len(gs.Players) > 0 {
		gs.Players[0].Role = RoleOrchestrator
		gs.Players[0].ObjectiveCard = nil
	}
}

// NextPlayerTurn rotates the turn to the next seated role, skipping empty
// seats, and clears the accessed-district set. Completing the cycle back
// to the orchestrator marks the round boundary and drops the game back
// into lobby mode.
func (gs *GameState) NextPlayerTurn() {
	next := gs.CurrentTurn.Next()
	for counter := 0; ; counter++ {
		seated := false
		for _, p := range gs.Players {
			if p.Role == next {
				seated = true
				break
			}
		}
		if seated {
			break
		}
		next = next.Next()
		if next == RoleOrchestrator {
			gs.IsLobby = true
		}
		if counter >= 1000 {
			next = RoleOrchestrator
			break
		}
	}
	gs.AccessedDistricts = nil
	gs.CurrentTurn = next
}

// UpdateSituationCard stores a copy of the card and snapshots its
// unmodified traffic table.
func (gs *GameState) UpdateSituationCard(card SituationCard) {
	copied := card.Clone()
	gs.SituationCard = &copied
	gs.baseCosts = append([]DistrictCost(nil), card.Costs...)
}

// AssignRandomObjectiveCards deals one objective card from the situation
// card's pool to every non-orchestrator player and places them on the
// card's start node.
func (gs *GameState) AssignRandomObjectiveCards() error {
	if gs.SituationCard == nil {
		return fmt.Errorf("%w and can therefore not assign objective cards to the players", ErrNoSituationCard)
	}
	pool := make([]ObjectiveCard, len(gs.SituationCard.ObjectiveCards))
	for i, c := range gs.SituationCard.ObjectiveCards {
		pool[i] = c.Clone()
	}
	for i := range gs.Players {
		if gs.Players[i].Role == RoleOrchestrator {
			continue
		}
		if len(pool) == 0 {
			return errors.New("there were not enough objective cards for all the players")
		}
		idx := rand.Intn(len(pool))
		card := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		start := card.StartNodeID
		gs.Players[i].PositionNodeID = &start
		gs.Players[i].ObjectiveCard = &card
	}
	return nil
}

// UpdateObjectiveStatus flips the pickup and delivery flags of every
// seated player whose position matches the corresponding objective node.
// Delivery requires the pickup to have happened first.
func (gs *GameState) UpdateObjectiveStatus() error {
	for i := range gs.Players {
		p := &gs.Players[i]
		if p.Role == RoleOrchestrator {
			continue
		}
		if p.PositionNodeID == nil {
			return errors.New("the player does not have a position on the board")
		}
		if p.ObjectiveCard == nil {
			return errors.New("the player does not have an objective card")
		}
		if *p.PositionNodeID == p.ObjectiveCard.PickUpNodeID {
			p.ObjectiveCard.PickedPackageUp = true
		}
		if *p.PositionNodeID == p.ObjectiveCard.DropOffNodeID && p.ObjectiveCard.PickedPackageUp {
			p.ObjectiveCard.DroppedPackageOff = true
		}
	}
	return nil
}

// StartGame moves the lobby into an active round. It requires an
// orchestrator, at least two players, a situation card and no undecided
// seats; it then resets per-round player data, rebuilds the board from
// the card, deals objective cards and restores movement budgets.
func (gs *GameState) StartGame() error {
	gs.resetPlayerRoundData()
	gs.EdgeRestrictions = nil
	gs.DistrictModifiers = nil
	if err := gs.rebuildBoardFromCard(); err != nil {
		return err
	}

	for _, p := range gs.Players {
		if p.Role == RoleUndecided {
			return fmt.Errorf("unable to start game because player %d (%s) has not chosen a seat", p.UniqueID, p.Name)
		}
	}

	hasOrchestrator := false
	for _, p := range gs.Players {
		if p.Role == RoleOrchestrator {
			hasOrchestrator = true
			break
		}
	}
	if !hasOrchestrator {
		return errors.New("unable to start game because the lobby does not have an orchestrator")
	}
	if len(gs.Players) < 2 {
		return errors.New("unable to start game because there are not enough players")
	}
	if gs.SituationCard == nil {
		return errors.New("unable to start game because a situation card is not chosen")
	}
	if err := gs.AssignRandomObjectiveCards(); err != nil {
		return err
	}
	if err := gs.UpdateObjectiveStatus(); err != nil {
		return err
	}

	gs.IsLobby = false
	gs.resetMovementValues()
	return nil
}

func (gs *GameState) resetPlayerRoundData() {
	for i := range gs.Players {
		gs.Players[i].PositionNodeID = nil
		gs.Players[i].RemainingMoves = StartMovementAmount
		gs.Players[i].ObjectiveCard = nil
		gs.Players[i].IsBus = false
		gs.Players[i].IsTrain = false
	}
}

func (gs *GameState) resetMovementValues() {
	for i := range gs.Players {
		gs.Players[i].RemainingMoves = StartMovementAmount
	}
}

// rebuildBoardFromCard resets the board to the default topology, applies
// the situation card's traffic table and any card-specific layout change.
func (gs *GameState) rebuildBoardFromCard() error {
	gs.Board.Reset()
	if gs.SituationCard == nil {
		return fmt.Errorf("%w, cannot update the board costs", ErrNoSituationCard)
	}
	gs.Board.UpdateDistrictCosts(gs.SituationCard)
	switch gs.SituationCard.ID {
	case 1, 2, 3:
	case 4:
		// Accident on the ring road: east-bound I6 to I7 is closed.
		oneWay := EdgeRestriction{NodeOne: 19, NodeTwo: 20, Kind: RestrictionOneWay}
		if err := gs.AddEdgeRestriction(oneWay, false); err != nil {
			return err
		}
	case 5:
		// Airport train stops: the spine south of Central Station is down.
		if err := gs.Board.ToggleRail(24); err != nil {
			return err
		}
		if err := gs.Board.ToggleRail(27); err != nil {
			return err
		}
	default:
		return fmt.Errorf("situation card with id %d does not exist", gs.SituationCard.ID)
	}
	return nil
}

// AddDistrictModifier activates the modifier, enforcing the per-district
// cap for its kind, and recomputes the traffic table.
func (gs *GameState) AddDistrictModifier(modifier DistrictModifier) error {
	maxCount := MaxAccessModifierCount
	switch modifier.Kind {
	case ModifierPriority:
		maxCount = MaxPriorityModifierCount
	case ModifierToll:
		maxCount = MaxTollModifierCount
	}

	active := 0
	for _, m := range gs.DistrictModifiers {
		if m.Kind == modifier.Kind && m.District == modifier.District {
			active++
		}
	}
	if active >= maxCount {
		return fmt.Errorf("cannot add more modifiers of kind %q to district %q, the cap is %d", modifier.Kind, modifier.District, maxCount)
	}

	gs.DistrictModifiers = append(gs.DistrictModifiers, modifier)
	return gs.updateTrafficLevels()
}

// RemoveDistrictModifier deactivates the matching modifier and recomputes
// the traffic table.
func (gs *GameState) RemoveDistrictModifier(modifier DistrictModifier) error {
	for i, m := range gs.DistrictModifiers {
		if m.EqualIgnoringDelete(modifier) {
			gs.DistrictModifiers = append(gs.DistrictModifiers[:i], gs.DistrictModifiers[i+1:]...)
			return gs.updateTrafficLevels()
		}
	}
	return errors.New("there is no modifier like the given one in the game")
}

// updateTrafficLevels replays the card's original traffic table through
// every active access modifier. The first access modifier in a district
// resets its traffic to level one; each modifier then raises it by its
// vehicle type's increment, minus one shared baseline step.
func (gs *GameState) updateTrafficLevels() error {
	if gs.SituationCard == nil {
		return fmt.Errorf("%w, cannot update the traffic levels", ErrNoSituationCard)
	}

	newCosts := make([]DistrictCost, 0, len(gs.baseCosts))
	for _, base := range gs.baseCosts {
		entry := base
		accessSeen := false
		increments := -1
		for _, m := range gs.DistrictModifiers {
			if m.District != base.District || m.Kind != ModifierAccess {
				continue
			}
			if m.VehicleType == nil {
				return errors.New("there is no vehicle type on the access modifier, cannot update the traffic levels")
			}
			if !accessSeen {
				entry.Traffic = TrafficLevelOne
				accessSeen = true
			}
			increments += m.VehicleType.TrafficIncrements()
		}
		for i := 0; i < increments; i++ {
			entry.Traffic = entry.Traffic.Increased()
		}
		newCosts = append(newCosts, entry)
	}

	gs.SituationCard.Costs = newCosts
	gs.Board.UpdateDistrictCosts(gs.SituationCard)
	return nil
}

// AddEdgeRestriction places the restriction on the board and mirrors it
// into the serialized restriction list.
func (gs *GameState) AddEdgeRestriction(er EdgeRestriction, modifiable bool) error {
	if err := gs.Board.SetRestriction(er, modifiable); err != nil {
		return err
	}
	gs.EdgeRestrictions = append(gs.EdgeRestrictions, er)
	return nil
}

// RemoveEdgeRestriction removes the restriction from the board and the
// serialized list, matching the node pair in either order.
func (gs *GameState) RemoveEdgeRestriction(er EdgeRestriction) error {
	if err := gs.Board.RemoveRestriction(er); err != nil {
		return err
	}
	kept := gs.EdgeRestrictions[:0]
	for _, existing := range gs.EdgeRestrictions {
		sameOrder := existing.NodeOne == er.NodeOne && existing.NodeTwo == er.NodeTwo
		reversed := existing.NodeOne == er.NodeTwo && existing.NodeTwo == er.NodeOne
		if !sameOrder && !reversed {
			kept = append(kept, existing)
		}
	}
	gs.EdgeRestrictions = kept
	return nil
}

// ApplyAction applies one turn-scoped input to the state. Structural
// inputs (start game, role changes, card assignment, leaving) are not
// queueable and are rejected here.
func (gs *GameState) ApplyAction(in PlayerInput) error {
	switch in.Kind {
	case InputMovement:
		if in.RelatedNodeID == nil {
			return errors.New("a movement input needs a related node id")
		}
		return gs.MovePlayer(in.PlayerID, *in.RelatedNodeID)
	case InputModifyDistrict:
		if in.DistrictModifier == nil {
			return errors.New("a district modification input needs a district modifier")
		}
		if in.DistrictModifier.Delete {
			return gs.RemoveDistrictModifier(*in.DistrictModifier)
		}
		return gs.AddDistrictModifier(*in.DistrictModifier)
	case InputModifyEdgeRestrictions:
		if in.EdgeRestriction == nil {
			return errors.New("an edge restriction input needs an edge restriction")
		}
		if in.EdgeRestriction.Delete {
			return gs.RemoveEdgeRestriction(*in.EdgeRestriction)
		}
		return gs.AddEdgeRestriction(*in.EdgeRestriction, true)
	case InputSetPlayerBusBool:
		if in.RelatedBool == nil {
			return errors.New("a bus toggle input needs a related bool")
		}
		gs.SetPlayerBus(in.PlayerID, *in.RelatedBool)
		return nil
	case InputSetPlayerTrainBool:
		if in.RelatedBool == nil {
			return errors.New("a train toggle input needs a related bool")
		}
		gs.SetPlayerTrain(in.PlayerID, *in.RelatedBool)
		return nil
	default:
		return fmt.Errorf("input kind %q cannot be applied as a queued action", in.Kind)
	}
}
