package engine

import (
	"testing"
)

func TestDefaultBoardTopology(t *testing.T) {
	board := DefaultBoard()

	if len(board.Nodes) != 29 {
		t.Fatalf("Expected 29 nodes, got %d", len(board.Nodes))
	}

	// Every directed edge must have a reverse record
	for _, node := range board.Nodes {
		for _, edge := range board.EdgesOf(node.ID) {
			back, err := board.AreNeighbours(edge.To, node.ID)
			if err != nil {
				t.Fatalf("AreNeighbours(%d, %d) failed: %v", edge.To, node.ID, err)
			}
			if !back {
				t.Errorf("Edge %d->%d has no reverse record", node.ID, edge.To)
			}
		}
	}

	// Rail stations
	for _, id := range []int{2, 10, 24, 27} {
		node, err := board.NodeByID(id)
		if err != nil {
			t.Fatalf("NodeByID(%d) failed: %v", id, err)
		}
		if !node.IsConnectedToRail {
			t.Errorf("Expected node %d to be a rail station", id)
		}
	}

	// Parking spots
	for _, id := range []int{2, 9, 13, 19, 21, 26, 27} {
		node, err := board.NodeByID(id)
		if err != nil {
			t.Fatalf("NodeByID(%d) failed: %v", id, err)
		}
		if !node.IsParkingSpot {
			t.Errorf("Expected node %d to be a parking spot", id)
		}
	}

	// Every district has a cost entry
	for _, district := range AllDistricts() {
		if _, ok := board.DistrictCosts[district]; !ok {
			t.Errorf("Missing cost entry for district %q", district)
		}
	}
}

func TestDefaultBoardRailSpine(t *testing.T) {
	board := DefaultBoard()

	spine := [][2]int{{2, 10}, {10, 24}, {24, 27}}
	for _, pair := range spine {
		found := false
		for _, edge := range board.EdgesOf(pair[0]) {
			if edge.To == pair[1] && edge.ConnectedThroughRail {
				found = true
				if edge.Modifiable {
					t.Errorf("Rail edge %d->%d should not be modifiable", pair[0], pair[1])
				}
			}
		}
		if !found {
			t.Errorf("Expected rail edge %d->%d", pair[0], pair[1])
		}
	}
}

func TestNodeByID_Unknown(t *testing.T) {
	board := DefaultBoard()
	if _, err := board.NodeByID(999); err == nil {
		t.Error("Expected error for unknown node id")
	}
}

func TestDistrictEntryCost(t *testing.T) {
	board := DefaultBoard()
	edge := Edge{District: DistrictSuburbs, MovementCost: 1}

	// District cost wins when higher than the edge cost
	board.DistrictCosts[DistrictSuburbs] = 4
	cost, err := board.DistrictEntryCost(edge)
	if err != nil {
		t.Fatalf("DistrictEntryCost failed: %v", err)
	}
	if cost != 4 {
		t.Errorf("Expected entry cost 4, got %d", cost)
	}

	// The edge's own cost is the floor, even when the district is free
	board.DistrictCosts[DistrictSuburbs] = 0
	cost, err = board.DistrictEntryCost(edge)
	if err != nil {
		t.Fatalf("DistrictEntryCost failed: %v", err)
	}
	if cost != 1 {
		t.Errorf("Expected entry cost 1, got %d", cost)
	}
}

func TestSetRestriction_BothDirections(t *testing.T) {
	board := DefaultBoard()
	er := EdgeRestriction{NodeOne: 0, NodeTwo: 1, Kind: RestrictionElectric}

	if err := board.SetRestriction(er, true); err != nil {
		t.Fatalf("SetRestriction failed: %v", err)
	}

	for _, pair := range [][2]int{{0, 1}, {1, 0}} {
		found := false
		for _, edge := range board.EdgesOf(pair[0]) {
			if edge.To == pair[1] {
				found = true
				if edge.Restriction == nil || *edge.Restriction != RestrictionElectric {
					t.Errorf("Expected electric restriction on edge %d->%d", pair[0], pair[1])
				}
				if edge.Blocked {
					t.Errorf("Edge %d->%d should not be blocked", pair[0], pair[1])
				}
			}
		}
		if !found {
			t.Fatalf("Edge %d->%d not found", pair[0], pair[1])
		}
	}
}

func TestSetRestriction_OneWayBlocksSingleDirection(t *testing.T) {
	board := DefaultBoard()
	er := EdgeRestriction{NodeOne: 19, NodeTwo: 20, Kind: RestrictionOneWay}

	if err := board.SetRestriction(er, false); err != nil {
		t.Fatalf("SetRestriction failed: %v", err)
	}

	for _, edge := range board.EdgesOf(19) {
		if edge.To == 20 && !edge.Blocked {
			t.Error("Expected edge 19->20 to be blocked")
		}
	}
	for _, edge := range board.EdgesOf(20) {
		if edge.To == 19 && edge.Blocked {
			t.Error("Expected edge 20->19 to stay open")
		}
	}
}

func TestSetRestriction_NotNeighbours(t *testing.T) {
	board := DefaultBoard()
	er := EdgeRestriction{NodeOne: 0, NodeTwo: 28, Kind: RestrictionHazard}

	if err := board.SetRestriction(er, true); err == nil {
		t.Error("Expected error for non-adjacent nodes")
	}
}

func TestRemoveRestriction(t *testing.T) {
	board := DefaultBoard()
	er := EdgeRestriction{NodeOne: 0, NodeTwo: 1, Kind: RestrictionHazard}

	if err := board.SetRestriction(er, true); err != nil {
		t.Fatalf("SetRestriction failed: %v", err)
	}
	if err := board.RemoveRestriction(er); err != nil {
		t.Fatalf("RemoveRestriction failed: %v", err)
	}

	for _, pair := range [][2]int{{0, 1}, {1, 0}} {
		for _, edge := range board.EdgesOf(pair[0]) {
			if edge.To == pair[1] && edge.Restriction != nil {
				t.Errorf("Expected restriction cleared on edge %d->%d", pair[0], pair[1])
			}
		}
	}
}

func TestRemoveRestriction_NotModifiable(t *testing.T) {
	board := DefaultBoard()

	// The rail spine is fixed infrastructure
	er := EdgeRestriction{NodeOne: 2, NodeTwo: 10, Kind: RestrictionParkAndRide}
	if err := board.RemoveRestriction(er); err == nil {
		t.Error("Expected error when clearing a non-modifiable edge")
	}
}

func TestToggleRail(t *testing.T) {
	board := DefaultBoard()

	if err := board.ToggleRail(24); err != nil {
		t.Fatalf("ToggleRail failed: %v", err)
	}
	node, _ := board.NodeByID(24)
	if node.IsConnectedToRail {
		t.Error("Expected node 24 to have lost rail connectivity")
	}

	if err := board.ToggleRail(999); err == nil {
		t.Error("Expected error for unknown node id")
	}
}

func TestBoardClone_Independent(t *testing.T) {
	board := DefaultBoard()
	clone := board.Clone()

	er := EdgeRestriction{NodeOne: 0, NodeTwo: 1, Kind: RestrictionElectric}
	if err := clone.SetRestriction(er, true); err != nil {
		t.Fatalf("SetRestriction failed: %v", err)
	}
	clone.DistrictCosts[DistrictPort] = 9

	for _, edge := range board.EdgesOf(0) {
		if edge.To == 1 && edge.Restriction != nil {
			t.Error("Restriction on the clone leaked into the original")
		}
	}
	if board.DistrictCosts[DistrictPort] == 9 {
		t.Error("Cost change on the clone leaked into the original")
	}
}
