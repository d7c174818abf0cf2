package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/gridlock-games/gridlock-server/game/apperr"
	"github.com/gridlock-games/gridlock-server/game/engine"
	"github.com/gridlock-games/gridlock-server/game/service"
	"github.com/gridlock-games/gridlock-server/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
	handler http.Handler
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	s.handler = cors.AllowAll().Handler(s.router)
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Player management
	api.HandleFunc("/players", s.handleCreatePlayer).Methods("POST")
	api.HandleFunc("/players/{id}/check-in", s.handleCheckIn).Methods("GET")
	api.HandleFunc("/players/{id}", s.handleDeletePlayer).Methods("DELETE")

	// Game operations
	api.HandleFunc("/games", s.handleCreateGame).Methods("POST")
	api.HandleFunc("/games/input", s.handlePlayerInput).Methods("POST")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")
	api.HandleFunc("/games/{id}/join", s.handleJoinGame).Methods("POST")
	api.HandleFunc("/lobbies", s.handleListLobbies).Methods("GET")

	// Reference data
	api.HandleFunc("/situation-cards", s.handleListSituationCards).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.GetType(err) {
	case apperr.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperr.ErrorTypePrecondition, apperr.ErrorTypeRule:
		status = http.StatusBadRequest
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// Player Handlers

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	player, err := s.service.CreatePlayer(r.Context(), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, player)
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid player id"})
		return
	}

	if err := s.service.CheckIn(r.Context(), playerID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "checked in"})
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid player id"})
		return
	}

	if err := s.service.DeletePlayer(r.Context(), playerID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Game Handlers

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req service.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	game, err := s.service.CreateGame(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, game)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid game id"})
		return
	}

	game, err := s.service.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid game id"})
		return
	}

	var req service.JoinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	game, err := s.service.JoinGame(r.Context(), gameID, req)
	if err != nil {
		respondError(w, err)
		return
	}

	// Let everyone in the lobby see the new roster
	if s.hub != nil {
		s.hub.BroadcastToGame(game.ID, game)
	}

	respondJSON(w, http.StatusOK, game)
}

func (s *Server) handleListLobbies(w http.ResponseWriter, r *http.Request) {
	lobbies, err := s.service.ListLobbies(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(lobbies),
		"lobbies": lobbies,
	})
}

func (s *Server) handlePlayerInput(w http.ResponseWriter, r *http.Request) {
	var in engine.PlayerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	game, err := s.service.SubmitInput(r.Context(), in)
	if err != nil {
		log.Printf("[INPUT] game=%d player=%d kind=%s rejected: %v", in.GameID, in.PlayerID, in.Kind, err)
		respondError(w, err)
		return
	}

	// Broadcast the accepted state to everyone watching the game
	if s.hub != nil {
		s.hub.BroadcastToGame(game.ID, game)
	}

	log.Printf("[INPUT] game=%d player=%d kind=%s accepted", in.GameID, in.PlayerID, in.Kind)
	respondJSON(w, http.StatusOK, game)
}

// Reference Data Handlers

func (s *Server) handleListSituationCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.service.ListSituationCards(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cards)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(r.URL.Query().Get("game"))
	if err != nil {
		http.Error(w, "game parameter required", http.StatusBadRequest)
		return
	}

	// Verify the game exists
	if _, err := s.service.GetGame(r.Context(), gameID); err != nil {
		http.Error(w, "unknown game", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, gameID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
