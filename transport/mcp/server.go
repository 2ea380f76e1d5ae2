package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cuvinte/scrabble-server/game/engine"
	"github.com/cuvinte/scrabble-server/game/service"
)

// Server bridges MCP tool calls to the game service.
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over the game service.
func NewServer(svc service.GameService) *Server {
	s := &Server{service: svc}
	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Word Game Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Multiplayer word game - MCP Interface

Sessions hold a 15x15 board, a shared letter bag, and 2-4 players taking
turns. Create a session to receive a session ID and your player ID; other
players join with the session ID and get their own player IDs. Keep your
player ID private, it is your identity on moves.

AVAILABLE TOOLS:
- create_session: Create a new session and become its host
- join_session: Join an existing session by ID
- get_state: Get the full session state (board, racks, scores, turn)
- list_sessions: List all session IDs
- play_move: Place tiles on the board (only on your turn)
- check_word: Check whether a word belongs to a dictionary
- list_dictionaries: List available dictionaries

Placements are {row, col, letter} objects with 0-based coordinates. Mark a
tile played as a joker with "blank": true.`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session and return its ID plus your player ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the host player",
				},
				"max_players": map[string]interface{}{
					"type":        "integer",
					"description": "Seats in the session (default 4)",
				},
				"dictionary": map[string]interface{}{
					"type":        "string",
					"description": "Dictionary ID for word checks (default ro)",
				},
			},
			Required: []string{"player_name"},
		},
	}, s.handleCreateSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "join_session",
		Description: "Join an existing session and receive your player ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to join",
				},
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the joining player",
				},
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Existing player ID to reconnect as (optional)",
				},
			},
			Required: []string{"session_id", "player_name"},
		},
	}, s.handleJoinSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_state",
		Description: "Get the full state of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleGetState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all session IDs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "play_move",
		Description: "Place tiles on the board. Fails when it is not your turn.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"player_id": map[string]interface{}{
					"type":        "string",
					"description": "Your player ID from create_session or join_session",
				},
				"placements": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"row":    map[string]interface{}{"type": "integer"},
							"col":    map[string]interface{}{"type": "integer"},
							"letter": map[string]interface{}{"type": "string"},
							"blank":  map[string]interface{}{"type": "boolean"},
						},
						"required": []string{"row", "col", "letter"},
					},
					"description": "Tiles to place, 0-based coordinates",
				},
			},
			Required: []string{"session_id", "player_id", "placements"},
		},
	}, s.handlePlayMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "check_word",
		Description: "Check whether a word belongs to a dictionary",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"word": map[string]interface{}{
					"type":        "string",
					"description": "Word to check",
				},
				"dictionary": map[string]interface{}{
					"type":        "string",
					"description": "Dictionary ID (default ro)",
				},
			},
			Required: []string{"word"},
		},
	}, s.handleCheckWord)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_dictionaries",
		Description: "List available dictionaries",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListDictionaries)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// Tool handlers

func (s *Server) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	playerName, _ := args["player_name"].(string)

	settings := engine.Settings{}
	if maxPlayers, ok := args["max_players"].(float64); ok {
		settings.MaxPlayers = int(maxPlayers)
	}
	if dict, ok := args["dictionary"].(string); ok {
		settings.Dictionary = dict
	}

	created, err := s.service.CreateSession(ctx, playerName, "", settings)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nYour player ID: %s\n\n%s",
		created.SessionID, created.PlayerID, formatSession(created.Session))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleJoinSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	playerName, _ := args["player_name"].(string)
	playerID, _ := args["player_id"].(string)

	joined, err := s.service.JoinSession(ctx, sessionID, playerName, playerID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Joined session: %s\nYour player ID: %s\n\n%s",
		joined.SessionID, joined.PlayerID, formatSession(joined.Session))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	session, err := s.service.GetState(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSession(session)), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.service.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(ids) == 0 {
		return mcp.NewToolResultText("No active sessions."), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n", len(ids))
	for _, id := range ids {
		result += fmt.Sprintf("- %s\n", id)
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handlePlayMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	playerID, _ := args["player_id"].(string)

	placements, err := decodePlacements(args["placements"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session, err := s.service.ApplyMove(ctx, sessionID, playerID, placements)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Move accepted, %d tile(s) placed.\n\n%s",
		len(placements), formatSession(session))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleCheckWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	word, _ := args["word"].(string)
	dict, _ := args["dictionary"].(string)
	if dict == "" {
		dict = engine.DefaultDictionary
	}

	check, err := s.service.CheckWord(ctx, word, dict)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	verdict := "NOT in"
	if check.Valid {
		verdict = "in"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%q is %s the %s dictionary.", check.Word, verdict, check.Dictionary)), nil
}

func (s *Server) handleListDictionaries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, err := s.service.ListDictionaries(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(infos) == 0 {
		return mcp.NewToolResultText("No dictionaries available."), nil
	}

	result := "Available Dictionaries:\n"
	for _, info := range infos {
		line := fmt.Sprintf("- %s (%s)", info.ID, info.Filename)
		if info.Loaded {
			line += fmt.Sprintf(", %d words loaded", info.Words)
		}
		result += line + "\n"
	}

	return mcp.NewToolResultText(result), nil
}

// decodePlacements converts the raw tool argument into engine placements via
// a JSON round trip.
func decodePlacements(raw interface{}) ([]engine.Placement, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid placements: %w", err)
	}

	var placements []engine.Placement
	if err := json.Unmarshal(data, &placements); err != nil {
		return nil, fmt.Errorf("invalid placements: %w", err)
	}
	if len(placements) == 0 {
		return nil, fmt.Errorf("placements must not be empty")
	}

	return placements, nil
}

// Formatting helpers

func formatSession(session *engine.Session) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Session: %s | Dictionary: %s | Bag: %d tiles\n",
		session.ID, session.Settings.Dictionary, len(session.Bag)))

	current, err := session.CurrentPlayer()
	if err == nil {
		if player, ok := session.Players[current]; ok {
			b.WriteString(fmt.Sprintf("Turn: %s\n", player.Name))
		}
	}

	b.WriteString("\nPlayers:\n")
	for _, id := range session.TurnOrder {
		player, ok := session.Players[id]
		if !ok {
			continue
		}
		marker := ""
		if player.IsHost {
			marker = " (host)"
		}
		b.WriteString(fmt.Sprintf("- %s%s: %d points, %d tiles\n",
			player.Name, marker, player.Score, len(player.Rack)))
	}

	b.WriteString("\nBoard:\n")
	b.WriteString(formatBoard(session))

	return b.String()
}

// formatBoard renders the sparse board as a 15x15 ASCII grid.
func formatBoard(session *engine.Session) string {
	var b strings.Builder
	for row := 0; row < engine.BoardSize; row++ {
		for col := 0; col < engine.BoardSize; col++ {
			if cell, ok := session.Board[engine.CellKey(row, col)]; ok {
				letter := strings.ToUpper(cell.Letter)
				if cell.Blank {
					letter = strings.ToLower(cell.Letter)
				}
				b.WriteString(letter)
			} else {
				b.WriteString(".")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
