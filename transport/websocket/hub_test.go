package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridlock-games/gridlock-server/game/engine"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}

	if hub.games == nil {
		t.Error("Hub games map is nil")
	}

	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}

	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}

	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	// Create a mock client
	client := &Client{
		hub:    hub,
		gameID: 42,
		send:   make(chan []byte, 256),
	}

	// Register the client
	hub.registerClient(client)

	// Check if the watcher set was created
	if _, exists := hub.games[42]; !exists {
		t.Error("Watcher set was not created")
	}

	// Check if client was added to the watcher set
	if !hub.games[42][client] {
		t.Error("Client was not registered for the game")
	}

	// Check watcher count
	if len(hub.games[42]) != 1 {
		t.Errorf("Expected 1 client watching the game, got %d", len(hub.games[42]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:    hub,
		gameID: 42,
		send:   make(chan []byte, 256),
	}

	// Register then unregister
	hub.registerClient(client)
	hub.unregisterClient(client)

	// Check if the watcher set was cleaned up
	if _, exists := hub.games[42]; exists {
		t.Error("Watcher set should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleClientsPerGame(t *testing.T) {
	hub := NewHub()
	gameID := 7

	// Create multiple clients for the same game
	client1 := &Client{
		hub:    hub,
		gameID: gameID,
		send:   make(chan []byte, 256),
	}
	client2 := &Client{
		hub:    hub,
		gameID: gameID,
		send:   make(chan []byte, 256),
	}

	// Register both clients
	hub.registerClient(client1)
	hub.registerClient(client2)

	// Check the game has 2 watchers
	if len(hub.games[gameID]) != 2 {
		t.Errorf("Expected 2 clients watching the game, got %d", len(hub.games[gameID]))
	}

	// Unregister one client
	hub.unregisterClient(client1)

	// Watcher set should still exist with 1 client
	if len(hub.games[gameID]) != 1 {
		t.Errorf("Expected 1 client remaining, got %d", len(hub.games[gameID]))
	}

	// Check the right client remains
	if !hub.games[gameID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToGame(t *testing.T) {
	hub := NewHub()
	gameID := 9

	// Create a test client
	client := &Client{
		hub:    hub,
		gameID: gameID,
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client)

	// Broadcast a game state
	state := engine.NewGameState("Broadcast test", gameID)
	hub.BroadcastToGame(gameID, state)

	// Check if message was sent to client
	select {
	case data := <-client.send:
		var message Message
		err := json.Unmarshal(data, &message)
		if err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}

		if message.GameID != gameID {
			t.Errorf("Expected gameID %d, got %d", gameID, message.GameID)
		}

		if message.Event != "state_update" {
			t.Errorf("Expected event 'state_update', got %s", message.Event)
		}

		if message.GameState == nil || message.GameState.Name != "Broadcast test" {
			t.Error("GameState not correctly transmitted")
		}

	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()
	done := make(chan bool)

	// Start hub in goroutine
	go func() {
		for {
			select {
			case message := <-hub.broadcast:
				// Verify the broadcast message
				if message.GameID != 3 {
					t.Errorf("Expected gameID 3, got %d", message.GameID)
				}
				if message.Event != "custom-event" {
					t.Errorf("Expected event 'custom-event', got %s", message.Event)
				}
				if message.Data != "test-data" {
					t.Errorf("Expected data 'test-data', got %v", message.Data)
				}
				done <- true
				return
			case <-time.After(100 * time.Millisecond):
				t.Error("No broadcast message received within timeout")
				done <- false
				return
			}
		}
	}()

	// Send broadcast event
	hub.BroadcastEvent(3, "custom-event", "test-data")

	// Wait for verification
	<-done
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()

	// Start hub in background
	go hub.Run()

	// Create a test HTTP server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gameID, err := strconv.Atoi(r.URL.Query().Get("game"))
		if err != nil {
			gameID = 0
		}
		hub.ServeWS(w, r, gameID)
	}))
	defer server.Close()

	// Convert HTTP URL to WebSocket URL
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?game=11"

	// Connect to WebSocket
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give some time for registration
	time.Sleep(50 * time.Millisecond)

	// Check if client was registered
	if len(hub.games[11]) != 1 {
		t.Errorf("Expected 1 client watching the game, got %d", len(hub.games[11]))
	}

	// Close connection
	conn.Close()

	// Give some time for unregistration
	time.Sleep(10 * time.Millisecond)

	// Check if client was unregistered and the watcher set cleaned up
	if _, exists := hub.games[11]; exists {
		t.Error("Watcher set should have been cleaned up after WebSocket close")
	}
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()

	// Start hub
	go hub.Run()

	// Create a test HTTP server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gameID, err := strconv.Atoi(r.URL.Query().Get("game"))
		if err != nil {
			gameID = 0
		}
		hub.ServeWS(w, r, gameID)
	}))
	defer server.Close()

	// Convert HTTP URL to WebSocket URL
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?game=21"

	// Connect to WebSocket
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give time for connection to establish
	time.Sleep(10 * time.Millisecond)

	// Broadcast a test game state
	state := engine.NewGameState("Receive test", 21)
	hub.BroadcastToGame(21, state)

	// Read message from WebSocket
	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, messageData, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	// Parse the message
	var message Message
	err = json.Unmarshal(messageData, &message)
	if err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}

	// Verify message content
	if message.GameID != 21 {
		t.Errorf("Expected gameID 21, got %d", message.GameID)
	}

	if message.GameState == nil || message.GameState.Name != "Receive test" {
		t.Error("GameState not correctly received")
	}

	if message.GameState != nil && !message.GameState.IsLobby {
		t.Error("A fresh game state must be a lobby")
	}
}
