package storage

import (
	"context"
	"errors"

	"github.com/cuvinte/scrabble-server/game/engine"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrAlreadyExists   = errors.New("session already exists")
	ErrVersionConflict = errors.New("session was modified concurrently")
	ErrUnavailable     = errors.New("session store unavailable")
)

// Repository stores session documents with optimistic-concurrency
// versioning.
type Repository interface {
	// Create stores a brand-new session at version 1. It fails with
	// ErrAlreadyExists when the ID is taken.
	Create(ctx context.Context, session *engine.Session) error

	// Get returns the session with its current version, or ErrNotFound.
	// Callers own the returned value; mutating it does not touch the store.
	Get(ctx context.Context, id string) (*engine.Session, error)

	// Update commits a mutated session if and only if the stored version
	// still equals session.Version, then increments the stored version.
	// It fails with ErrVersionConflict on a lost race and ErrNotFound when
	// the session is gone.
	Update(ctx context.Context, session *engine.Session) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)

	// Ping checks store availability.
	Ping(ctx context.Context) error

	// Close releases store resources.
	Close() error
}
