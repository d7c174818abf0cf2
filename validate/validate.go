// Command validate checks the built-in board and situation card
// catalogue for internal consistency. It checks:
//   - Edge symmetry: every road is listed in both adjacency lists
//   - Connectivity: every node is reachable from every other node
//   - Rail spine: rail edges only connect rail stations
//   - Situation cards: a traffic level for all six districts
//   - Objective cards: start, pickup and dropoff nodes exist on the board
//   - Heavy cargo: the heavy vehicle type follows the amount threshold
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gridlock-games/gridlock-server/game/catalog"
	"github.com/gridlock-games/gridlock-server/game/engine"
)

// ValidationResult captures the outcome of validating a single subject.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	Subject string
	Valid   bool
	Errors  []string
}

// validateBoard checks the default board topology.
func validateBoard() ValidationResult {
	result := ValidationResult{
		Subject: "default board",
		Valid:   true,
		Errors:  []string{},
	}

	board := engine.DefaultBoard()

	if len(board.Nodes) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Board has no nodes")
		return result
	}

	// Edge symmetry and rail consistency
	edgeCount := 0
	railCount := 0
	for _, node := range board.Nodes {
		for _, edge := range board.EdgesOf(node.ID) {
			edgeCount++
			back := false
			for _, reverse := range board.EdgesOf(edge.To) {
				if reverse.To == node.ID {
					back = true
					break
				}
			}
			if !back {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Edge %d->%d has no reverse record", node.ID, edge.To))
			}
			if edge.ConnectedThroughRail {
				railCount++
				to, err := board.NodeByID(edge.To)
				if err != nil || !node.IsConnectedToRail || !to.IsConnectedToRail {
					result.Valid = false
					result.Errors = append(result.Errors, fmt.Sprintf("Rail edge %d->%d does not connect two rail stations", node.ID, edge.To))
				}
			}
			if _, ok := board.DistrictCosts[edge.District]; !ok {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Edge %d->%d references district %q without a cost entry", node.ID, edge.To, edge.District))
			}
		}
	}

	// Connectivity: flood fill from node 0
	visited := make(map[int]bool)
	queue := []int{board.Nodes[0].ID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, edge := range board.EdgesOf(current) {
			if !visited[edge.To] {
				queue = append(queue, edge.To)
			}
		}
	}
	for _, node := range board.Nodes {
		if !visited[node.ID] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Node %d (%s) is unreachable", node.ID, node.Name))
		}
	}

	if result.Valid {
		parking := 0
		rail := 0
		for _, node := range board.Nodes {
			if node.IsParkingSpot {
				parking++
			}
			if node.IsConnectedToRail {
				rail++
			}
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Nodes: %d", len(board.Nodes)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Directed edges: %d (%d rail)", edgeCount, railCount))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Parking spots: %d", parking))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Rail stations: %d", rail))
		result.Errors = append(result.Errors, "✓ Connectivity: every node reachable")
	}

	return result
}

// validateCard checks one situation card against the board.
func validateCard(card engine.SituationCard, board *engine.Board) ValidationResult {
	result := ValidationResult{
		Subject: fmt.Sprintf("situation card %d: %s", card.ID, card.Title),
		Valid:   true,
		Errors:  []string{},
	}

	// Every district needs a traffic level
	covered := make(map[engine.District]bool)
	for _, cost := range card.Costs {
		covered[cost.District] = true
	}
	for _, district := range engine.AllDistricts() {
		if !covered[district] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing traffic level for district %q", district))
		}
	}

	if len(card.ObjectiveCards) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Card has no objective cards")
	}

	for _, objective := range card.ObjectiveCards {
		for _, nodeID := range []int{objective.StartNodeID, objective.PickUpNodeID, objective.DropOffNodeID} {
			if _, err := board.NodeByID(nodeID); err != nil {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Objective %q references unknown node %d", objective.Name, nodeID))
			}
		}

		heavy := objective.HasVehicleType(engine.RestrictionHeavy)
		if objective.Amount >= engine.HeavyCargoThreshold && !heavy {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Objective %q carries %d units but lacks the heavy vehicle type", objective.Name, objective.Amount))
		}
		if objective.Amount < engine.HeavyCargoThreshold && heavy {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Objective %q carries %d units but has the heavy vehicle type", objective.Name, objective.Amount))
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Districts covered: %d", len(card.Costs)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Objective cards: %d", len(card.ObjectiveCards)))
	}

	return result
}

// main validates the board and every catalogue card, printing a concise
// report and exiting with non-zero status if anything is inconsistent.
func main() {
	board := engine.DefaultBoard()

	results := []ValidationResult{validateBoard()}
	for _, card := range catalog.All() {
		results = append(results, validateCard(card, board))
	}

	allValid := true
	for _, result := range results {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.Subject)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ Board and catalogue are consistent!")
	} else {
		fmt.Println("❌ Some checks failed")
		os.Exit(1)
	}
}
