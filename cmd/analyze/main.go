// Command analyze prints quick, human-readable heuristics about the
// built-in situation cards. It summarizes each card's traffic pressure,
// its objective routes measured in hops over the default board, and
// highlights routes that look tight against the per-round movement
// budget.
package main

import (
	"fmt"

	"github.com/gridlock-games/gridlock-server/game/catalog"
	"github.com/gridlock-games/gridlock-server/game/engine"
)

func main() {
	board := engine.DefaultBoard()

	for _, card := range catalog.All() {
		fmt.Printf("\n=== Analyzing card %d: %s ===\n", card.ID, card.Title)
		analyzeCard(card, board)
	}
}

func analyzeCard(card engine.SituationCard, board *engine.Board) {
	fmt.Printf("Goal: %s\n", card.Goal)

	// Traffic pressure across the city
	totalCost := 0
	worst := engine.TrafficLevelOne
	for _, cost := range card.Costs {
		totalCost += cost.Traffic.MovementCost()
		if cost.Traffic > worst {
			worst = cost.Traffic
		}
		fmt.Printf("  %-14s traffic %d (entry cost %d)\n", cost.District, cost.Traffic, cost.Traffic.MovementCost())
	}
	fmt.Printf("Worst traffic level: %d, combined entry cost: %d\n", worst, totalCost)

	// Objective routes
	tight := 0
	for _, objective := range card.ObjectiveCards {
		toPickup := hopDistance(board, objective.StartNodeID, objective.PickUpNodeID)
		toDropOff := hopDistance(board, objective.PickUpNodeID, objective.DropOffNodeID)
		if toPickup < 0 || toDropOff < 0 {
			fmt.Printf("  ⚠️  %s: no route between objective nodes!\n", objective.Name)
			continue
		}
		route := toPickup + toDropOff
		marker := ""
		// A route longer than the budget needs at least two rounds even
		// on empty streets
		if route > engine.StartMovementAmount {
			marker = "  (multi-round)"
			tight++
		}
		fmt.Printf("  %s: %d -> %d -> %d, %d hops%s\n",
			objective.Name, objective.StartNodeID, objective.PickUpNodeID, objective.DropOffNodeID, route, marker)
	}

	if tight > 0 {
		fmt.Printf("⚠️  %d objectives cannot finish in a single round\n", tight)
	} else {
		fmt.Printf("✅ Every objective is finishable in one round on empty streets\n")
	}
}

// hopDistance is the breadth-first shortest path in edge hops, ignoring
// traffic, restrictions and rail. Returns -1 when no route exists.
func hopDistance(board *engine.Board, from, to int) int {
	if from == to {
		return 0
	}
	visited := map[int]bool{from: true}
	type entry struct {
		node int
		dist int
	}
	queue := []entry{{from, 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, edge := range board.EdgesOf(current.node) {
			if visited[edge.To] {
				continue
			}
			if edge.To == to {
				return current.dist + 1
			}
			visited[edge.To] = true
			queue = append(queue, entry{edge.To, current.dist + 1})
		}
	}
	return -1
}
