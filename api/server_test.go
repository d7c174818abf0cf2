package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gridlock-games/gridlock-server/game/controller"
	"github.com/gridlock-games/gridlock-server/game/engine"
	"github.com/gridlock-games/gridlock-server/game/service"
	"github.com/gridlock-games/gridlock-server/transport/websocket"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	hub := websocket.NewHub()
	go hub.Run()
	svc := service.NewGameService(controller.New(time.Hour))
	return NewServer(svc, hub)
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createPlayer(t *testing.T, server *Server, name string) service.PlayerInfo {
	t.Helper()
	rec := doJSON(t, server, "POST", "/api/players", map[string]string{"name": name})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create player: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var player service.PlayerInfo
	decodeInto(t, rec, &player)
	return player
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)
	rec := doJSON(t, server, "GET", "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreatePlayerEndpoint(t *testing.T) {
	server := newTestServer(t)

	player := createPlayer(t, server, "Hilde")
	if player.ID == 0 {
		t.Fatal("expected a non-zero player id")
	}
	if player.Name != "Hilde" {
		t.Fatalf("expected name Hilde, got %q", player.Name)
	}
}

func TestCreatePlayerRejectsBlankName(t *testing.T) {
	server := newTestServer(t)
	rec := doJSON(t, server, "POST", "/api/players", map[string]string{"name": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckInEndpoint(t *testing.T) {
	server := newTestServer(t)
	player := createPlayer(t, server, "Hilde")

	rec := doJSON(t, server, "GET", fmt.Sprintf("/api/players/%d/check-in", player.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server, "GET", "/api/players/999999999/check-in", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown player, got %d", rec.Code)
	}
}

func TestDeletePlayerEndpoint(t *testing.T) {
	server := newTestServer(t)
	player := createPlayer(t, server, "Hilde")

	rec := doJSON(t, server, "DELETE", fmt.Sprintf("/api/players/%d", player.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, server, "GET", fmt.Sprintf("/api/players/%d/check-in", player.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after deletion, got %d", rec.Code)
	}
}

func TestGameLifecycleEndpoints(t *testing.T) {
	server := newTestServer(t)
	host := createPlayer(t, server, "Hilde")

	rec := doJSON(t, server, "POST", "/api/games", service.CreateGameRequest{
		HostID: host.ID, HostName: host.Name, Name: "Tuesday night",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var game engine.GameState
	decodeInto(t, rec, &game)
	if !game.IsLobby {
		t.Fatal("a fresh game must be a lobby")
	}

	rec = doJSON(t, server, "GET", fmt.Sprintf("/api/games/%d", game.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get game: expected 200, got %d", rec.Code)
	}

	joiner := createPlayer(t, server, "Oskar")
	rec = doJSON(t, server, "POST", fmt.Sprintf("/api/games/%d/join", game.ID), service.JoinGameRequest{
		PlayerID: joiner.ID, PlayerName: joiner.Name,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("join game: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var joined engine.GameState
	decodeInto(t, rec, &joined)
	if len(joined.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(joined.Players))
	}

	rec = doJSON(t, server, "GET", "/api/lobbies", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list lobbies: expected 200, got %d", rec.Code)
	}
	var lobbies struct {
		Count   int                 `json:"count"`
		Lobbies []*engine.GameState `json:"lobbies"`
	}
	decodeInto(t, rec, &lobbies)
	if lobbies.Count != 1 {
		t.Fatalf("expected 1 lobby, got %d", lobbies.Count)
	}
}

func TestGetUnknownGame(t *testing.T) {
	server := newTestServer(t)
	rec := doJSON(t, server, "GET", "/api/games/123456", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPlayerInputEndpoint(t *testing.T) {
	server := newTestServer(t)
	host := createPlayer(t, server, "Hilde")

	rec := doJSON(t, server, "POST", "/api/games", service.CreateGameRequest{
		HostID: host.ID, HostName: host.Name, Name: "Input test",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d", rec.Code)
	}
	var game engine.GameState
	decodeInto(t, rec, &game)

	role := engine.RoleOrchestrator
	rec = doJSON(t, server, "POST", "/api/games/input", engine.PlayerInput{
		PlayerID:    host.ID,
		GameID:      game.ID,
		Kind:        engine.InputChangeRole,
		RelatedRole: &role,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("input: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated engine.GameState
	decodeInto(t, rec, &updated)
	seated, err := updated.PlayerByID(host.ID)
	if err != nil {
		t.Fatalf("PlayerByID failed: %v", err)
	}
	if seated.Role != engine.RoleOrchestrator {
		t.Fatalf("expected orchestrator, got %s", seated.Role)
	}
}

func TestRejectedInputReturnsBadRequest(t *testing.T) {
	server := newTestServer(t)
	host := createPlayer(t, server, "Hilde")

	rec := doJSON(t, server, "POST", "/api/games", service.CreateGameRequest{
		HostID: host.ID, HostName: host.Name, Name: "Rejection test",
	})
	var game engine.GameState
	decodeInto(t, rec, &game)

	// Movement is illegal while the game is a lobby
	node := 5
	rec = doJSON(t, server, "POST", "/api/games/input", engine.PlayerInput{
		PlayerID:      host.ID,
		GameID:        game.ID,
		Kind:          engine.InputMovement,
		RelatedNodeID: &node,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	decodeInto(t, rec, &body)
	if body["error"] == "" {
		t.Fatal("expected an error message in the response body")
	}
}

func TestListSituationCardsEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/situation-cards", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var cards []engine.SituationCard
	decodeInto(t, rec, &cards)
	if len(cards) != 5 {
		t.Fatalf("expected 5 situation cards, got %d", len(cards))
	}
}

func TestWebSocketRequiresGameParam(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest("GET", "/ws", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a game parameter, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/ws?game=424242", nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown game, got %d", rec.Code)
	}
}
