package engine

import "fmt"

// Node is one location on the board
type Node struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	IsConnectedToRail bool   `json:"is_connected_to_rail"`
	IsParkingSpot     bool   `json:"is_parking_spot"`
}

// Edge is one directed half of a road. The board stores two Edge records
// per undirected road, one in each adjacency list.
type Edge struct {
	To                   int              `json:"to"`
	District             District         `json:"district"`
	MovementCost         int              `json:"movement_cost"`
	Blocked              bool             `json:"blocked"`
	ConnectedThroughRail bool             `json:"is_connected_through_rail"`
	Restriction          *RestrictionType `json:"restriction,omitempty"`
	Modifiable           bool             `json:"is_modifiable"`
}

// Board is the city graph: nodes, adjacency lists and the current
// per-district movement cost table.
type Board struct {
	Nodes         []Node           `json:"nodes"`
	Edges         map[int][]Edge   `json:"edges"`
	DistrictCosts map[District]int `json:"district_costs"`
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		Edges:         make(map[int][]Edge),
		DistrictCosts: make(map[District]int),
	}
}

// DefaultBoard builds the standard 29-node city used by every game: an
// industry park and port in the west, a ring road around the city centre,
// suburbs, and the airport in the south-east, with a rail spine running
// Industry Park - Central Station - Warehouses - Terminal 1.
func DefaultBoard() *Board {
	b := NewBoard()

	names := []string{
		"Factory", "Refinery", "Industry Park", "I1", "I2", "Port", "I3",
		"Beach", "Northside", "I4", "Central Station", "City Square",
		"Concert Hall", "Eastside Mart", "East Town", "Food Court",
		"City Park", "Quarry", "I5", "I6", "I7", "I8", "West Town",
		"Lakeside", "Warehouses", "I9", "I10", "Terminal 1", "Terminal 2",
	}
	for id, name := range names {
		b.Nodes = append(b.Nodes, Node{ID: id, Name: name})
	}

	for _, id := range []int{2, 10, 24, 27} {
		b.Nodes[id].IsConnectedToRail = true
	}
	for _, id := range []int{2, 9, 13, 19, 21, 26, 27} {
		b.Nodes[id].IsParkingSpot = true
	}

	roads := []struct {
		a, b     int
		district District
	}{
		{0, 1, DistrictIndustryPark},
		{0, 2, DistrictIndustryPark},
		{1, 2, DistrictIndustryPark},
		{2, 3, DistrictSuburbs},
		{3, 4, DistrictRingRoad},
		{3, 9, DistrictRingRoad},
		{4, 5, DistrictPort},
		{4, 6, DistrictRingRoad},
		{6, 13, DistrictRingRoad},
		{6, 7, DistrictSuburbs},
		{7, 8, DistrictSuburbs},
		{9, 10, DistrictCityCentre},
		{9, 18, DistrictRingRoad},
		{10, 11, DistrictCityCentre},
		{10, 15, DistrictCityCentre},
		{11, 12, DistrictCityCentre},
		{11, 16, DistrictCityCentre},
		{12, 13, DistrictCityCentre},
		{13, 14, DistrictSuburbs},
		{13, 20, DistrictRingRoad},
		{14, 21, DistrictSuburbs},
		{15, 16, DistrictCityCentre},
		{16, 19, DistrictCityCentre},
		{17, 18, DistrictSuburbs},
		{18, 19, DistrictRingRoad},
		{18, 23, DistrictSuburbs},
		{19, 20, DistrictRingRoad},
		{20, 26, DistrictSuburbs},
		{20, 27, DistrictAirport},
		{21, 27, DistrictAirport},
		{22, 23, DistrictSuburbs},
		{23, 24, DistrictSuburbs},
		{24, 25, DistrictSuburbs},
		{25, 26, DistrictSuburbs},
		{26, 27, DistrictAirport},
		{27, 28, DistrictAirport},
	}
	for _, r := range roads {
		b.addRoad(r.a, r.b, r.district, 1, false)
	}

	// Rail spine. These edges are part of the fixed infrastructure and
	// cannot carry orchestrator restrictions.
	b.addRoad(2, 10, DistrictIndustryPark, 1, true)
	b.addRoad(10, 24, DistrictIndustryPark, 1, true)
	b.addRoad(24, 27, DistrictIndustryPark, 1, true)

	for _, d := range AllDistricts() {
		b.DistrictCosts[d] = 1
	}

	return b
}

func (b *Board) addRoad(a, to int, district District, cost int, rail bool) {
	modifiable := !rail
	b.Edges[a] = append(b.Edges[a], Edge{
		To:                   to,
		District:             district,
		MovementCost:         cost,
		ConnectedThroughRail: rail,
		Modifiable:           modifiable,
	})
	b.Edges[to] = append(b.Edges[to], Edge{
		To:                   a,
		District:             district,
		MovementCost:         cost,
		ConnectedThroughRail: rail,
		Modifiable:           modifiable,
	})
}

// Reset rebuilds the board to the default topology, discarding every
// restriction and cost change.
func (b *Board) Reset() {
	*b = *DefaultBoard()
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{
		Nodes:         append([]Node(nil), b.Nodes...),
		Edges:         make(map[int][]Edge, len(b.Edges)),
		DistrictCosts: make(map[District]int, len(b.DistrictCosts)),
	}
	for id, edges := range b.Edges {
		copied := make([]Edge, len(edges))
		for i, e := range edges {
			copied[i] = e
			if e.Restriction != nil {
				r := *e.Restriction
				copied[i].Restriction = &r
			}
		}
		out.Edges[id] = copied
	}
	for d, cost := range b.DistrictCosts {
		out.DistrictCosts[d] = cost
	}
	return out
}

// NodeByID returns the node with the given ID.
func (b *Board) NodeByID(id int) (Node, error) {
	for _, n := range b.Nodes {
		if n.ID == id {
			return n, nil
		}
	}
	return Node{}, fmt.Errorf("there is no node with id %d", id)
}

// EdgesOf returns the outgoing edges of the node with the given ID,
// or nil if the node has none.
func (b *Board) EdgesOf(id int) []Edge {
	return b.Edges[id]
}

// AreNeighbours reports whether a direct edge runs from node a to node b.
func (b *Board) AreNeighbours(a, to int) (bool, error) {
	edges, ok := b.Edges[a]
	if !ok {
		return false, fmt.Errorf("node %d has no neighbours", a)
	}
	for _, e := range edges {
		if e.To == to {
			return true, nil
		}
	}
	return false, nil
}

// DistrictEntryCost returns what entering the edge's district costs the
// first time a turn touches it: the higher of the district's current cost
// and the edge's own cost, never the sum.
func (b *Board) DistrictEntryCost(e Edge) (int, error) {
	cost, ok := b.DistrictCosts[e.District]
	if !ok {
		return 0, fmt.Errorf("there is no cost entry for district %q", e.District)
	}
	if e.MovementCost > cost {
		return e.MovementCost, nil
	}
	return cost, nil
}

// UpdateDistrictCosts replaces the per-district cost table with the
// movement costs derived from the card's traffic levels.
func (b *Board) UpdateDistrictCosts(card *SituationCard) {
	for _, dc := range card.Costs {
		b.DistrictCosts[dc.District] = dc.Traffic.MovementCost()
	}
}

// ToggleRail flips the rail connectivity of the node with the given ID.
func (b *Board) ToggleRail(nodeID int) error {
	for i := range b.Nodes {
		if b.Nodes[i].ID == nodeID {
			b.Nodes[i].IsConnectedToRail = !b.Nodes[i].IsConnectedToRail
			return nil
		}
	}
	return fmt.Errorf("there is no node with id %d", nodeID)
}

// SetRestriction places the restriction on both directed records of the
// edge, or on the blocked direction only for one-way restrictions. If the
// second direction fails the first is rolled back and both failures are
// reported together. The modifiable flag marks whether the restriction may
// later be removed.
func (b *Board) SetRestriction(er EdgeRestriction, modifiable bool) error {
	if er.Kind == RestrictionOneWay {
		// One-way blocks travel from NodeOne towards NodeTwo; the
		// opposite direction stays open.
		return b.setDirected(er.NodeOne, er.NodeTwo, er.Kind, modifiable, true)
	}
	if err := b.setDirected(er.NodeOne, er.NodeTwo, er.Kind, modifiable, false); err != nil {
		return err
	}
	if err := b.setDirected(er.NodeTwo, er.NodeOne, er.Kind, modifiable, false); err != nil {
		if rollbackErr := b.clearDirected(er.NodeOne, er.NodeTwo); rollbackErr != nil {
			return fmt.Errorf("%v and secondly %v", err, rollbackErr)
		}
		return err
	}
	return nil
}

// RemoveRestriction clears the restriction from both directed records of
// the edge, restoring it on partial failure.
func (b *Board) RemoveRestriction(er EdgeRestriction) error {
	if err := b.clearDirected(er.NodeOne, er.NodeTwo); err != nil {
		return err
	}
	if err := b.clearDirected(er.NodeTwo, er.NodeOne); err != nil {
		if rollbackErr := b.SetRestriction(er, true); rollbackErr != nil {
			return fmt.Errorf("%v and secondly %v", err, rollbackErr)
		}
		return err
	}
	return nil
}

func (b *Board) setDirected(from, to int, kind RestrictionType, modifiable, blocked bool) error {
	neighbours, err := b.AreNeighbours(from, to)
	if err != nil {
		return err
	}
	if !neighbours {
		return fmt.Errorf("node %d is not a neighbour of node %d, cannot place a restriction between them", to, from)
	}
	edges := b.Edges[from]
	for i := range edges {
		if edges[i].To != to {
			continue
		}
		r := kind
		edges[i].Restriction = &r
		edges[i].Modifiable = modifiable
		if blocked {
			edges[i].Blocked = true
		}
	}
	return nil
}

func (b *Board) clearDirected(from, to int) error {
	neighbours, err := b.AreNeighbours(from, to)
	if err != nil {
		return err
	}
	if !neighbours {
		return fmt.Errorf("node %d is not a neighbour of node %d, cannot remove a restriction between them", to, from)
	}
	edges := b.Edges[from]
	for i := range edges {
		if edges[i].To != to {
			continue
		}
		if !edges[i].Modifiable {
			return fmt.Errorf("the edge between node %d and node %d is not modifiable", from, to)
		}
		edges[i].Restriction = nil
		edges[i].Blocked = false
	}
	return nil
}
