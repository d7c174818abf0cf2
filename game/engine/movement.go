package engine

import (
	"errors"
	"fmt"
)

// MovePlayer moves the player along the edge to toNodeID and deducts the
// movement cost. The first move into a district this turn pays the
// district entry cost plus any modifier bonus; later moves within the same
// district pay only the edge's own cost. Rail, bus and restricted edges
// always cost one. Legality beyond adjacency and blocked edges is the rule
// engine's job, as is rejecting moves that would leave a negative balance.
func (gs *GameState) MovePlayer(playerID, toNodeID int) error {
	for i := range gs.Players {
		player := &gs.Players[i]
		if player.UniqueID != playerID {
			continue
		}

		if player.PositionNodeID == nil {
			return errors.New("the player is not at any node")
		}
		currentNodeID := *player.PositionNodeID

		currentNode, err := gs.Board.NodeByID(currentNodeID)
		if err != nil {
			return err
		}
		toNode, err := gs.Board.NodeByID(toNodeID)
		if err != nil {
			return err
		}

		var edge *Edge
		for _, e := range gs.Board.EdgesOf(currentNodeID) {
			if e.To == toNodeID {
				edge = &e
				break
			}
		}
		if edge == nil {
			return fmt.Errorf("node %d is not a neighbour of node %d", toNodeID, currentNodeID)
		}
		if edge.Blocked {
			return fmt.Errorf("the road from node %d to node %d is closed in that direction", currentNodeID, toNodeID)
		}

		if currentNode.IsConnectedToRail && toNode.IsConnectedToRail {
			if edge.ConnectedThroughRail {
				movePlayerToNode(player, toNodeID, 1)
				return nil
			}
			return fmt.Errorf("node %d is not a neighbouring rail station, cannot travel there by rail", toNodeID)
		}

		if player.IsBus {
			if edge.Restriction == nil || *edge.Restriction != RestrictionParkAndRide {
				return fmt.Errorf("node %d is not reachable over a park & ride road, a bus cannot move there", toNodeID)
			}
			movePlayerToNode(player, toNodeID, 1)
			return nil
		}

		if edge.Restriction != nil {
			if *edge.Restriction == RestrictionParkAndRide {
				return fmt.Errorf("the road to node %d is reserved for park & ride buses", toNodeID)
			}
			movePlayerToNode(player, toNodeID, 1)
			return nil
		}

		if !gs.hasAccessedDistrict(edge.District) {
			gs.AccessedDistricts = append(gs.AccessedDistricts, edge.District)
			entryCost, err := gs.Board.DistrictEntryCost(*edge)
			if err != nil {
				return err
			}
			bonus, err := gs.districtBonusMoves(player, edge.District)
			if err != nil {
				return err
			}
			player.RemainingMoves -= entryCost
			player.RemainingMoves += bonus
			player.PositionNodeID = &toNodeID
			return nil
		}

		movePlayerToNode(player, toNodeID, edge.MovementCost)
		return nil
	}
	return errors.New("there were no players in this game that match the player to move")
}

func movePlayerToNode(player *Player, toNodeID, cost int) {
	player.RemainingMoves -= cost
	player.PositionNodeID = &toNodeID
}

func (gs *GameState) hasAccessedDistrict(district District) bool {
	for _, d := range gs.AccessedDistricts {
		if d == district {
			return true
		}
	}
	return false
}

// districtBonusMoves computes the extra moves granted on first district
// entry by active modifiers matching the player's objective card. When
// several modifiers apply, the largest bonus wins; bonuses never stack.
func (gs *GameState) districtBonusMoves(player *Player, district District) (int, error) {
	if player.ObjectiveCard == nil {
		return 0, nil
	}
	bonus := 0
	for _, m := range gs.DistrictModifiers {
		if m.Kind == ModifierToll {
			continue
		}
		if m.District != district {
			continue
		}
		if m.VehicleType == nil {
			return 0, errors.New("the modifier has no vehicle type, bonus moves cannot be applied")
		}
		if *m.VehicleType == RestrictionDestination && gs.PlayerHasObjectiveInDistrict(*player, district) {
			if m.MovementValue != nil && *m.MovementValue > bonus {
				bonus = *m.MovementValue
			}
		}
		if !player.ObjectiveCard.HasVehicleType(*m.VehicleType) {
			continue
		}
		if m.MovementValue != nil && *m.MovementValue > bonus {
			bonus = *m.MovementValue
		}
	}
	return bonus, nil
}

// PlayerHasObjectiveInDistrict reports whether the player's objective
// pickup or drop-off node touches the district.
func (gs *GameState) PlayerHasObjectiveInDistrict(player Player, district District) bool {
	if player.ObjectiveCard == nil {
		return false
	}
	return gs.nodeIsInDistrict(player.ObjectiveCard.PickUpNodeID, district) ||
		gs.nodeIsInDistrict(player.ObjectiveCard.DropOffNodeID, district)
}

func (gs *GameState) nodeIsInDistrict(nodeID int, district District) bool {
	for _, e := range gs.Board.EdgesOf(nodeID) {
		if e.District == district {
			return true
		}
	}
	return false
}
