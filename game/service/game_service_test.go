package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/gridlock-games/gridlock-server/game/apperr"
	"github.com/gridlock-games/gridlock-server/game/controller"
	"github.com/gridlock-games/gridlock-server/game/engine"
	"github.com/gridlock-games/gridlock-server/game/service"
)

func newService(t *testing.T) service.GameService {
	t.Helper()
	return service.NewGameService(controller.New(time.Hour))
}

func TestCreatePlayer(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	player, err := svc.CreatePlayer(ctx, "Hilde")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	if player.ID == 0 {
		t.Fatal("expected a non-zero player id")
	}
	if player.Name != "Hilde" {
		t.Fatalf("expected name Hilde, got %q", player.Name)
	}
}

func TestCreatePlayerRequiresName(t *testing.T) {
	svc := newService(t)
	if _, err := svc.CreatePlayer(context.Background(), "   "); err == nil {
		t.Fatal("expected an error for a blank name")
	}
}

func TestCreateAndFetchGame(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	host, err := svc.CreatePlayer(ctx, "Hilde")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	game, err := svc.CreateGame(ctx, service.CreateGameRequest{
		HostID: host.ID, HostName: host.Name, Name: "Tuesday night",
	})
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	if !game.IsLobby {
		t.Fatal("a fresh game must be a lobby")
	}

	fetched, err := svc.GetGame(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if fetched.Name != "Tuesday night" {
		t.Fatalf("expected game name to survive, got %q", fetched.Name)
	}

	lobbies, err := svc.ListLobbies(ctx)
	if err != nil {
		t.Fatalf("ListLobbies failed: %v", err)
	}
	if len(lobbies) != 1 {
		t.Fatalf("expected 1 lobby, got %d", len(lobbies))
	}
}

func TestCreateGameRequiresName(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	host, err := svc.CreatePlayer(ctx, "Hilde")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	if _, err := svc.CreateGame(ctx, service.CreateGameRequest{HostID: host.ID, HostName: host.Name}); err == nil {
		t.Fatal("expected an error for a nameless game")
	}
}

func TestJoinAndSubmitInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	host, err := svc.CreatePlayer(ctx, "Hilde")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	game, err := svc.CreateGame(ctx, service.CreateGameRequest{
		HostID: host.ID, HostName: host.Name, Name: "Open table",
	})
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	joiner, err := svc.CreatePlayer(ctx, "Oskar")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	joined, err := svc.JoinGame(ctx, game.ID, service.JoinGameRequest{
		PlayerID: joiner.ID, PlayerName: joiner.Name,
	})
	if err != nil {
		t.Fatalf("JoinGame failed: %v", err)
	}
	if len(joined.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(joined.Players))
	}

	role := engine.RolePlayerOne
	updated, err := svc.SubmitInput(ctx, engine.PlayerInput{
		PlayerID:    joiner.ID,
		GameID:      game.ID,
		Kind:        engine.InputChangeRole,
		RelatedRole: &role,
	})
	if err != nil {
		t.Fatalf("SubmitInput failed: %v", err)
	}
	seated, err := updated.PlayerByID(joiner.ID)
	if err != nil {
		t.Fatalf("PlayerByID failed: %v", err)
	}
	if seated.Role != engine.RolePlayerOne {
		t.Fatalf("expected player_one, got %s", seated.Role)
	}
}

func TestCheckInAndDeletePlayer(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	player, err := svc.CreatePlayer(ctx, "Hilde")
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}
	if err := svc.CheckIn(ctx, player.ID); err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if err := svc.DeletePlayer(ctx, player.ID); err != nil {
		t.Fatalf("DeletePlayer failed: %v", err)
	}
	if err := svc.CheckIn(ctx, player.ID); err == nil {
		t.Fatal("expected an error checking in a deleted player")
	} else if apperr.GetType(err) != apperr.ErrorTypeNotFound {
		t.Fatalf("expected a not found error, got %v", err)
	}
}

func TestListSituationCards(t *testing.T) {
	svc := newService(t)
	cards, err := svc.ListSituationCards(context.Background())
	if err != nil {
		t.Fatalf("ListSituationCards failed: %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("expected 5 situation cards, got %d", len(cards))
	}
	for i, card := range cards {
		if card.ID != i+1 {
			t.Fatalf("expected card ids 1 through 5 in order, got %d at index %d", card.ID, i)
		}
		if len(card.ObjectiveCards) == 0 {
			t.Fatalf("card %d has no objective cards", card.ID)
		}
	}
}
