package engine

// Role identifies a player's seat within a game
type Role string

const (
	RoleUndecided    Role = "undecided"
	RolePlayerOne    Role = "player_one"
	RolePlayerTwo    Role = "player_two"
	RolePlayerThree  Role = "player_three"
	RolePlayerFour   Role = "player_four"
	RolePlayerFive   Role = "player_five"
	RolePlayerSix    Role = "player_six"
	RoleOrchestrator Role = "orchestrator"
)

// Next returns the role that takes the turn after this one.
// The cycle runs Orchestrator -> seats one through six -> Orchestrator.
func (r Role) Next() Role {
	switch r {
	case RoleUndecided:
		return RoleOrchestrator
	case RolePlayerOne:
		return RolePlayerTwo
	case RolePlayerTwo:
		return RolePlayerThree
	case RolePlayerThree:
		return RolePlayerFour
	case RolePlayerFour:
		return RolePlayerFive
	case RolePlayerFive:
		return RolePlayerSix
	case RolePlayerSix:
		return RoleOrchestrator
	case RoleOrchestrator:
		return RolePlayerOne
	default:
		return RoleOrchestrator
	}
}

// InputKind discriminates the variants of PlayerInput
type InputKind string

const (
	InputMovement               InputKind = "movement"
	InputChangeRole             InputKind = "change_role"
	InputAll                    InputKind = "all"
	InputNextTurn               InputKind = "next_turn"
	InputUndoAction             InputKind = "undo_action"
	InputModifyDistrict         InputKind = "modify_district"
	InputStartGame              InputKind = "start_game"
	InputAssignSituationCard    InputKind = "assign_situation_card"
	InputLeaveGame              InputKind = "leave_game"
	InputModifyEdgeRestrictions InputKind = "modify_edge_restrictions"
	InputSetPlayerBusBool       InputKind = "set_player_bus_bool"
	InputSetPlayerTrainBool     InputKind = "set_player_train_bool"
)

// RestrictionType tags an edge, limiting which vehicles may use it.
// The same set doubles as the vehicle types an objective card can require.
type RestrictionType string

const (
	RestrictionParkAndRide RestrictionType = "park_and_ride"
	RestrictionElectric    RestrictionType = "electric"
	RestrictionEmergency   RestrictionType = "emergency"
	RestrictionHazard      RestrictionType = "hazard"
	RestrictionDestination RestrictionType = "destination"
	RestrictionHeavy       RestrictionType = "heavy"
	RestrictionOneWay      RestrictionType = "one_way"
)

// TrafficIncrements returns how many traffic levels an access modifier
// for this vehicle type adds to its district.
func (r RestrictionType) TrafficIncrements() int {
	switch r {
	case RestrictionElectric:
		return 2
	case RestrictionHazard, RestrictionDestination, RestrictionHeavy:
		return 1
	default:
		return 0
	}
}

// District is a named zone grouping several nodes
type District string

const (
	DistrictIndustryPark District = "industry_park"
	DistrictPort         District = "port"
	DistrictSuburbs      District = "suburbs"
	DistrictRingRoad     District = "ring_road"
	DistrictCityCentre   District = "city_centre"
	DistrictAirport      District = "airport"
)

// AllDistricts lists every district in a stable order.
func AllDistricts() []District {
	return []District{
		DistrictIndustryPark,
		DistrictPort,
		DistrictSuburbs,
		DistrictRingRoad,
		DistrictCityCentre,
		DistrictAirport,
	}
}

// TrafficLevel describes congestion in a district, from one (free flow) to five (gridlock)
type TrafficLevel int

const (
	TrafficLevelOne TrafficLevel = iota + 1
	TrafficLevelTwo
	TrafficLevelThree
	TrafficLevelFour
	TrafficLevelFive
)

// MovementCost returns the per-district movement penalty for this traffic level.
func (t TrafficLevel) MovementCost() int {
	switch t {
	case TrafficLevelThree:
		return 1
	case TrafficLevelFour:
		return 2
	case TrafficLevelFive:
		return 4
	default:
		return 0
	}
}

// Increased returns the next traffic level, saturating at level five.
func (t TrafficLevel) Increased() TrafficLevel {
	if t >= TrafficLevelFive {
		return TrafficLevelFive
	}
	return t + 1
}

// ModifierKind discriminates district modifiers
type ModifierKind string

const (
	ModifierAccess   ModifierKind = "access"
	ModifierPriority ModifierKind = "priority"
	ModifierToll     ModifierKind = "toll"
)

// CargoType says what an objective card transports
type CargoType string

const (
	CargoPeople   CargoType = "people"
	CargoPackages CargoType = "packages"
)

const (
	// MaxPlayerCount caps the roster of a single game, orchestrator included.
	MaxPlayerCount = 7

	// StartMovementAmount is each player's movement budget at the start of a round.
	StartMovementAmount = 8

	// HeavyCargoThreshold is the cargo amount at which an objective card
	// additionally requires the heavy vehicle type.
	HeavyCargoThreshold = 5

	// Per-district caps on simultaneously active modifiers of one kind.
	MaxAccessModifierCount   = 2
	MaxPriorityModifierCount = 2
	MaxTollModifierCount     = 1
)

// Player is one participant in a game
type Player struct {
	ConnectedGameID *int           `json:"connected_game_id,omitempty"`
	Role            Role           `json:"role"`
	UniqueID        int            `json:"unique_id"`
	Name            string         `json:"name"`
	PositionNodeID  *int           `json:"position_node_id,omitempty"`
	RemainingMoves  int            `json:"remaining_moves"`
	ObjectiveCard   *ObjectiveCard `json:"objective_card,omitempty"`
	IsBus           bool           `json:"is_bus"`
	IsTrain         bool           `json:"is_train"`
}

// NewPlayer creates an unseated player with the given server-issued identifier
func NewPlayer(uniqueID int, name string) Player {
	return Player{
		Role:     RoleUndecided,
		UniqueID: uniqueID,
		Name:     name,
	}
}

// Clone returns a deep copy of the player.
func (p Player) Clone() Player {
	out := p
	if p.ConnectedGameID != nil {
		id := *p.ConnectedGameID
		out.ConnectedGameID = &id
	}
	if p.PositionNodeID != nil {
		id := *p.PositionNodeID
		out.PositionNodeID = &id
	}
	if p.ObjectiveCard != nil {
		card := p.ObjectiveCard.Clone()
		out.ObjectiveCard = &card
	}
	return out
}

// PlayerInput is one proposed action from a player. Which optional fields
// must be set depends on Kind; the rule engine rejects inputs whose
// required fields are missing.
type PlayerInput struct {
	PlayerID         int               `json:"player_id"`
	GameID           int               `json:"game_id"`
	Kind             InputKind         `json:"input_type"`
	RelatedRole      *Role             `json:"related_role,omitempty"`
	RelatedNodeID    *int              `json:"related_node_id,omitempty"`
	DistrictModifier *DistrictModifier `json:"district_modifier,omitempty"`
	SituationCardID  *int              `json:"situation_card_id,omitempty"`
	EdgeRestriction  *EdgeRestriction  `json:"edge_modifier,omitempty"`
	RelatedBool      *bool             `json:"related_bool,omitempty"`
}

// DistrictModifier is a zone-wide rule set by the orchestrator
type DistrictModifier struct {
	District      District         `json:"district"`
	Kind          ModifierKind     `json:"modifier"`
	VehicleType   *RestrictionType `json:"vehicle_type,omitempty"`
	MovementValue *int             `json:"associated_movement_value,omitempty"`
	MoneyValue    *int             `json:"associated_money_value,omitempty"`
	Delete        bool             `json:"delete"`
}

// EqualIgnoringDelete reports whether two modifiers describe the same rule,
// disregarding the delete flag carried by removal requests.
func (m DistrictModifier) EqualIgnoringDelete(other DistrictModifier) bool {
	if m.District != other.District || m.Kind != other.Kind {
		return false
	}
	if !equalPtr(m.VehicleType, other.VehicleType) {
		return false
	}
	if !equalPtr(m.MovementValue, other.MovementValue) {
		return false
	}
	return equalPtr(m.MoneyValue, other.MoneyValue)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// EdgeRestriction names one tagged road segment between two nodes
type EdgeRestriction struct {
	NodeOne int             `json:"node_one"`
	NodeTwo int             `json:"node_two"`
	Kind    RestrictionType `json:"edge_restriction"`
	Delete  bool            `json:"delete"`
}
