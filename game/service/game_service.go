package service

import (
	"context"
	"errors"

	"github.com/cuvinte/scrabble-server/game/dictionary"
	"github.com/cuvinte/scrabble-server/game/engine"
)

// ErrStorageConflict is returned when a session update keeps losing the
// optimistic-concurrency race after all retries.
var ErrStorageConflict = errors.New("session is being updated concurrently, try again")

// GameService defines all game-related operations
type GameService interface {
	// Session Management. An empty playerID asks the service to mint one;
	// passing a known ID makes Join an idempotent reconnect.
	CreateSession(ctx context.Context, playerName, playerID string, settings engine.Settings) (*CreateResult, error)
	JoinSession(ctx context.Context, sessionID, playerName, playerID string) (*JoinResult, error)
	GetState(ctx context.Context, sessionID string) (*engine.Session, error)
	ListSessions(ctx context.Context) ([]string, error)

	// Game Operations
	ApplyMove(ctx context.Context, sessionID, playerID string, placements []engine.Placement) (*engine.Session, error)

	// Dictionaries
	CheckWord(ctx context.Context, word, dictionaryID string) (*WordCheck, error)
	ListDictionaries(ctx context.Context) ([]dictionary.Info, error)

	// Health
	Health(ctx context.Context) (*HealthStatus, error)
}
