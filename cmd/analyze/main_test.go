package main

import (
	"testing"

	"github.com/gridlock-games/gridlock-server/game/catalog"
	"github.com/gridlock-games/gridlock-server/game/engine"
)

func TestHopDistance(t *testing.T) {
	board := engine.DefaultBoard()

	if got := hopDistance(board, 0, 0); got != 0 {
		t.Errorf("Expected distance 0 to self, got %d", got)
	}
	if got := hopDistance(board, 0, 1); got != 1 {
		t.Errorf("Expected distance 1 to a neighbour, got %d", got)
	}
	// Factory to the far airport terminal goes through the city
	if got := hopDistance(board, 0, 28); got <= 1 {
		t.Errorf("Expected a multi-hop route, got %d", got)
	}
	if got := hopDistance(board, 0, 999); got != -1 {
		t.Errorf("Expected -1 for an unknown node, got %d", got)
	}
}

func TestEveryObjectiveHasARoute(t *testing.T) {
	board := engine.DefaultBoard()

	for _, card := range catalog.All() {
		for _, objective := range card.ObjectiveCards {
			if hopDistance(board, objective.StartNodeID, objective.PickUpNodeID) < 0 {
				t.Errorf("Card %d objective %q: no route from start to pickup", card.ID, objective.Name)
			}
			if hopDistance(board, objective.PickUpNodeID, objective.DropOffNodeID) < 0 {
				t.Errorf("Card %d objective %q: no route from pickup to drop-off", card.ID, objective.Name)
			}
		}
	}
}
