package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// BoardSize is the side length of the square board.
	BoardSize = 15

	// Default session settings, applied when a creation request omits them.
	DefaultMaxPlayers = 4
	DefaultRackSize   = 7
	DefaultBagSize    = 100
	DefaultDictionary = "ro"
)

// Settings fixes the rules of one session at creation time.
type Settings struct {
	MaxPlayers int    `json:"max_players"`
	RackSize   int    `json:"rack_size"`
	BagSize    int    `json:"bag_size"`
	Dictionary string `json:"dictionary"`
}

// ApplyDefaults fills zero-valued fields with the documented defaults.
func (s *Settings) ApplyDefaults() {
	if s.MaxPlayers == 0 {
		s.MaxPlayers = DefaultMaxPlayers
	}
	if s.RackSize == 0 {
		s.RackSize = DefaultRackSize
	}
	if s.BagSize == 0 {
		s.BagSize = DefaultBagSize
	}
	if s.Dictionary == "" {
		s.Dictionary = DefaultDictionary
	}
}

// Validate checks the settings for structural validity. Missing optional
// fields are not an error; ApplyDefaults handles those.
func (s Settings) Validate() error {
	if s.MaxPlayers < 1 {
		return fmt.Errorf("%w: max_players must be at least 1, got %d", ErrInvalidSettings, s.MaxPlayers)
	}
	if s.RackSize < 0 {
		return fmt.Errorf("%w: rack_size cannot be negative, got %d", ErrInvalidSettings, s.RackSize)
	}
	if s.BagSize < 0 {
		return fmt.Errorf("%w: bag_size cannot be negative, got %d", ErrInvalidSettings, s.BagSize)
	}
	return nil
}

// Cell is one occupied board square. Blank marks a joker tile played as
// Letter; letter accounting for blanks is a caller-visible policy, see
// Session.ApplyMove.
type Cell struct {
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// Player is one participant in a session.
type Player struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Score  int      `json:"score"`
	Rack   []string `json:"rack"`
	Online bool     `json:"online"`
	IsHost bool     `json:"is_host"`
}

// Placement is one tile laid on the board during a move.
type Placement struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Blank  bool   `json:"blank"`
}

// Session is the root aggregate: one game instance and its full shared
// state. The board is a sparse flat map keyed by "row_col" so the document
// serializes without composite numeric keys; empty cells are simply absent.
type Session struct {
	ID               string             `json:"id"`
	Board            map[string]Cell    `json:"board"`
	Bag              []string           `json:"bag"`
	Players          map[string]*Player `json:"players"`
	TurnOrder        []string           `json:"turn_order"`
	CurrentTurnIndex int                `json:"current_turn_index"`
	GameStarted      bool               `json:"game_started"`
	Settings         Settings           `json:"settings"`
	ChatHistory      []string           `json:"chat_history"`
	CreatedAt        time.Time          `json:"created_at"`
	LastUpdate       time.Time          `json:"last_update"`

	// Version is the optimistic-concurrency counter owned by the
	// repository. It is not part of the serialized document body.
	Version int64 `json:"-"`
}

// CellKey builds the flat board key for a coordinate pair.
func CellKey(row, col int) string {
	return fmt.Sprintf("%d_%d", row, col)
}

// ParseCellKey splits a flat board key back into coordinates.
func ParseCellKey(key string) (row, col int, err error) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed cell key %q", key)
	}
	row, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed cell key %q: %v", key, err)
	}
	col, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed cell key %q: %v", key, err)
	}
	return row, col, nil
}

// Clone returns a deep copy of the session. Storage implementations hand out
// clones so callers never alias stored state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	clone := *s

	clone.Board = make(map[string]Cell, len(s.Board))
	for key, cell := range s.Board {
		clone.Board[key] = cell
	}

	clone.Bag = append([]string(nil), s.Bag...)
	clone.TurnOrder = append([]string(nil), s.TurnOrder...)
	clone.ChatHistory = append([]string(nil), s.ChatHistory...)

	clone.Players = make(map[string]*Player, len(s.Players))
	for id, player := range s.Players {
		p := *player
		p.Rack = append([]string(nil), player.Rack...)
		clone.Players[id] = &p
	}

	return &clone
}

// TileCount returns the total number of tiles across the bag, all racks, and
// occupied board cells. It equals Settings.BagSize for any session produced
// by the engine (tile conservation).
func (s *Session) TileCount() int {
	total := len(s.Bag) + len(s.Board)
	for _, player := range s.Players {
		total += len(player.Rack)
	}
	return total
}
