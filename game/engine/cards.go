package engine

// ObjectiveCard is a player's private mission: pick cargo up at one node
// and deliver it to another. Completion flags are the only mutable fields
// once the card has been drawn.
type ObjectiveCard struct {
	Name                string            `json:"name"`
	StartNodeID         int               `json:"start_node_id"`
	PickUpNodeID        int               `json:"pick_up_node_id"`
	DropOffNodeID       int               `json:"drop_off_node_id"`
	SpecialVehicleTypes []RestrictionType `json:"special_vehicle_types"`
	PickedPackageUp     bool              `json:"picked_package_up"`
	DroppedPackageOff   bool              `json:"dropped_package_off"`
	CargoType           CargoType         `json:"type_of_entities_to_transport"`
	Amount              int               `json:"amount_of_entities"`
}

// NewObjectiveCard builds an objective card. Cargo amounts at or above
// HeavyCargoThreshold additionally require the heavy vehicle type.
func NewObjectiveCard(name string, startNodeID, pickUpNodeID, dropOffNodeID int, vehicleTypes []RestrictionType, cargo CargoType, amount int) ObjectiveCard {
	types := append([]RestrictionType(nil), vehicleTypes...)
	if amount >= HeavyCargoThreshold {
		types = append(types, RestrictionHeavy)
	}
	return ObjectiveCard{
		Name:                name,
		StartNodeID:         startNodeID,
		PickUpNodeID:        pickUpNodeID,
		DropOffNodeID:       dropOffNodeID,
		SpecialVehicleTypes: types,
		CargoType:           cargo,
		Amount:              amount,
	}
}

// HasVehicleType reports whether the card grants the given vehicle type.
func (c ObjectiveCard) HasVehicleType(t RestrictionType) bool {
	for _, vt := range c.SpecialVehicleTypes {
		if vt == t {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the card.
func (c ObjectiveCard) Clone() ObjectiveCard {
	out := c
	out.SpecialVehicleTypes = append([]RestrictionType(nil), c.SpecialVehicleTypes...)
	return out
}

// DistrictCost pairs a district with its traffic level
type DistrictCost struct {
	District District     `json:"district"`
	Traffic  TrafficLevel `json:"traffic"`
}

// SituationCard is one scenario: per-district traffic plus the pool of
// objective cards dealt out at game start. Games hold their own copy so
// in-game modifiers never touch the catalogue.
type SituationCard struct {
	ID             int             `json:"card_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Goal           string          `json:"goal"`
	Costs          []DistrictCost  `json:"costs"`
	ObjectiveCards []ObjectiveCard `json:"objective_cards"`
}

// Clone returns a deep copy of the card.
func (c SituationCard) Clone() SituationCard {
	out := c
	out.Costs = append([]DistrictCost(nil), c.Costs...)
	out.ObjectiveCards = make([]ObjectiveCard, len(c.ObjectiveCards))
	for i, oc := range c.ObjectiveCards {
		out.ObjectiveCards[i] = oc.Clone()
	}
	return out
}

// NewGameInfo is the request payload for creating a game
type NewGameInfo struct {
	Host Player `json:"host"`
	Name string `json:"name"`
}
