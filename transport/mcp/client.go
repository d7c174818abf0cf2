package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gridlock-games/gridlock-server/game/engine"
	"github.com/gridlock-games/gridlock-server/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Gridlock Game Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Gridlock - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Drivers deliver the cargo on their objective card, picking it up at one
node and dropping it off at another, while the orchestrator reshapes the
city with district modifiers and road restrictions.

AVAILABLE TOOLS:
- create_player: Register yourself and get a player id
- create_game: Open a new lobby as host
- join_game: Join an existing lobby
- list_lobbies: List games still waiting for players
- game_state: Get a full game snapshot
- player_input: Submit any game input (movement, role change, start game, ...)
- list_situation_cards: List the scenario cards a game can be started with

FLOW:
1. create_player for each participant
2. create_game once, join_game for the rest
3. Everyone picks a role with a change_role input; exactly one orchestrator
4. The orchestrator assigns a situation card and sends start_game
5. Take turns: queue movement inputs, finish with next_turn`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_player",
		Description: "Register a new player and receive a unique player id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Display name for the player",
				},
			},
			Required: []string{"name"},
		},
	}, c.handleCreatePlayer)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Open a new game lobby hosted by the given player",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"host_id": map[string]interface{}{
					"type":        "integer",
					"description": "Player id of the host",
				},
				"host_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the host",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the game",
				},
			},
			Required: []string{"host_id", "host_name", "name"},
		},
	}, c.handleCreateGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "join_game",
		Description: "Join an existing game lobby",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "integer",
					"description": "Id of the game to join",
				},
				"player_id": map[string]interface{}{
					"type":        "integer",
					"description": "Player id of the joining player",
				},
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the joining player",
				},
			},
			Required: []string{"game_id", "player_id", "player_name"},
		},
	}, c.handleJoinGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_lobbies",
		Description: "List all games still waiting in lobby mode",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLobbies)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current state of a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "integer",
					"description": "Id of the game",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "player_input",
		Description: "Submit a player input. Kinds: movement, change_role, next_turn, undo_action, modify_district, start_game, assign_situation_card, leave_game, modify_edge_restrictions, set_player_bus_bool, set_player_train_bool",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_id": map[string]interface{}{
					"type":        "integer",
					"description": "Id of the acting player",
				},
				"game_id": map[string]interface{}{
					"type":        "integer",
					"description": "Id of the game",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"description": "Input kind",
				},
				"related_node_id": map[string]interface{}{
					"type":        "integer",
					"description": "Destination node for movement inputs",
				},
				"related_role": map[string]interface{}{
					"type":        "string",
					"description": "Role for change_role inputs (undecided, player_one..player_six, orchestrator)",
				},
				"related_bool": map[string]interface{}{
					"type":        "boolean",
					"description": "Value for bus/train toggle inputs",
				},
				"situation_card_id": map[string]interface{}{
					"type":        "integer",
					"description": "Card id for assign_situation_card inputs (1-5)",
				},
				"district_modifier": map[string]interface{}{
					"type":        "object",
					"description": "District modifier for modify_district inputs",
				},
				"edge_modifier": map[string]interface{}{
					"type":        "object",
					"description": "Edge restriction for modify_edge_restrictions inputs",
				},
			},
			Required: []string{"player_id", "game_id", "kind"},
		},
	}, c.handlePlayerInput)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_situation_cards",
		Description: "List the scenario cards a game can be started with",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSituationCards)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreatePlayer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	name, _ := args["name"].(string)

	var player service.PlayerInfo
	err := c.apiCall("POST", "/api/players", map[string]string{"name": name}, &player)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created player %s with id %d. Check in regularly via the REST API or the id expires.", player.Name, player.ID)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	hostID := intArg(args, "host_id")
	hostName, _ := args["host_name"].(string)
	name, _ := args["name"].(string)

	body := service.CreateGameRequest{HostID: hostID, HostName: hostName, Name: name}
	var game engine.GameState
	err := c.apiCall("POST", "/api/games", body, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created game %d\n\n%s", game.ID, formatGameState(&game))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleJoinGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID := intArg(args, "game_id")
	playerID := intArg(args, "player_id")
	playerName, _ := args["player_name"].(string)

	body := service.JoinGameRequest{PlayerID: playerID, PlayerName: playerName}
	var game engine.GameState
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%d/join", gameID), body, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&game)), nil
}

func (c *Client) handleListLobbies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                 `json:"count"`
		Lobbies []*engine.GameState `json:"lobbies"`
	}

	err := c.apiCall("GET", "/api/lobbies", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Open Lobbies (%d):\n\n", response.Count)
	for _, lobby := range response.Lobbies {
		result += fmt.Sprintf("- %d: %s (%d/%d players)\n",
			lobby.ID, lobby.Name, len(lobby.Players), engine.MaxPlayerCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID := intArg(args, "game_id")

	var game engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%d", gameID), nil, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&game)), nil
}

func (c *Client) handlePlayerInput(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})

	// Re-encode the arguments so the REST API parses them with the same
	// JSON field names a direct caller would use.
	data, err := json.Marshal(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var in engine.PlayerInput
	if err := json.Unmarshal(data, &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var game engine.GameState
	if err := c.apiCall("POST", "/api/games/input", in, &game); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Input %s accepted\n\n%s", in.Kind, formatGameState(&game))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSituationCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var cards []engine.SituationCard
	err := c.apiCall("GET", "/api/situation-cards", nil, &cards)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Situation Cards:\n\n")
	for _, card := range cards {
		b.WriteString(fmt.Sprintf("• %d: %s\n  %s\n  Goal: %s\n\n",
			card.ID, card.Title, card.Description, card.Goal))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// Formatting helpers

func formatGameState(game *engine.GameState) string {
	if game == nil {
		return "No game state available"
	}

	var b strings.Builder

	phase := "active"
	if game.IsLobby {
		phase = "lobby"
	}
	b.WriteString(fmt.Sprintf("Game %d: %s (%s)\n", game.ID, game.Name, phase))
	b.WriteString(fmt.Sprintf("Turn: %s\n", game.CurrentTurn))

	if game.SituationCard != nil {
		b.WriteString(fmt.Sprintf("Scenario: %s\n", game.SituationCard.Title))
	}

	b.WriteString(fmt.Sprintf("\nPlayers (%d/%d):\n", len(game.Players), engine.MaxPlayerCount))
	for _, p := range game.Players {
		line := fmt.Sprintf("- %s [%s]", p.Name, p.Role)
		if p.PositionNodeID != nil {
			line += fmt.Sprintf(" at node %d, %d moves left", *p.PositionNodeID, p.RemainingMoves)
		}
		if p.IsBus {
			line += " (bus)"
		}
		if p.IsTrain {
			line += " (train)"
		}
		if p.ObjectiveCard != nil {
			status := "en route to pickup"
			if p.ObjectiveCard.DroppedPackageOff {
				status = "delivered"
			} else if p.ObjectiveCard.PickedPackageUp {
				status = "carrying cargo"
			}
			line += fmt.Sprintf(" | %s: %s", p.ObjectiveCard.Name, status)
		}
		b.WriteString(line + "\n")
	}

	if len(game.DistrictModifiers) > 0 {
		b.WriteString("\nDistrict modifiers:\n")
		for _, m := range game.DistrictModifiers {
			b.WriteString(fmt.Sprintf("- %s on %s\n", m.Kind, m.District))
		}
	}

	if len(game.EdgeRestrictions) > 0 {
		b.WriteString("\nRoad restrictions:\n")
		for _, er := range game.EdgeRestrictions {
			b.WriteString(fmt.Sprintf("- %s between node %d and node %d\n", er.Kind, er.NodeOne, er.NodeTwo))
		}
	}

	if len(game.LegalNodes) > 0 {
		b.WriteString(fmt.Sprintf("\nLegal destinations: %v\n", game.LegalNodes))
	}

	return b.String()
}
