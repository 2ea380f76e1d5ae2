// Package memory provides the in-process session repository used by default
// and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cuvinte/scrabble-server/game/engine"
	"github.com/cuvinte/scrabble-server/storage"
)

// Store keeps session documents in a mutex-guarded map. Sessions are cloned
// on the way in and out so callers never alias stored state.
type Store struct {
	sessions map[string]*engine.Session
	mu       sync.RWMutex
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		sessions: make(map[string]*engine.Session),
	}
}

// Create stores a new session at version 1.
func (s *Store) Create(ctx context.Context, session *engine.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return storage.ErrAlreadyExists
	}

	stored := session.Clone()
	stored.Version = 1
	s.sessions[session.ID] = stored
	session.Version = 1

	return nil
}

// Get returns a clone of the stored session.
func (s *Store) Get(ctx context.Context, id string) (*engine.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	return session.Clone(), nil
}

// Update commits session only if the stored version matches the loaded one.
func (s *Store) Update(ctx context.Context, session *engine.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.sessions[session.ID]
	if !exists {
		return storage.ErrNotFound
	}
	if stored.Version != session.Version {
		return storage.ErrVersionConflict
	}

	next := session.Clone()
	next.Version = stored.Version + 1
	s.sessions[session.ID] = next
	session.Version = next.Version

	return nil
}

// List returns all session IDs in stable order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, nil
}

// Ping always succeeds for the in-memory store.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

var _ storage.Repository = (*Store)(nil)
