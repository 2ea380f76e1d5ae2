package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cuvinte/scrabble-server/game/dictionary"
	"github.com/cuvinte/scrabble-server/game/engine"
	"github.com/cuvinte/scrabble-server/metrics"
	"github.com/cuvinte/scrabble-server/storage"
)

const (
	defaultUpdateRetries = 3
	retryBackoff         = 25 * time.Millisecond
	createIDAttempts     = 5
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	store   storage.Repository
	dicts   *dictionary.Manager
	log     zerolog.Logger
	retries int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewGameService creates a new game service instance. retries bounds how many
// times a mutation is replayed after losing a concurrent-update race; zero
// selects the default.
func NewGameService(store storage.Repository, dicts *dictionary.Manager, log zerolog.Logger, retries int) GameService {
	if retries <= 0 {
		retries = defaultUpdateRetries
	}
	return &gameServiceImpl{
		store:   store,
		dicts:   dicts,
		log:     log,
		retries: retries,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// newSessionID returns a short ID derived from a UUID.
func newSessionID() string {
	return strings.SplitN(uuid.New().String(), "-", 2)[0]
}

// CreateSession creates a new session with the caller as host.
func (s *gameServiceImpl) CreateSession(ctx context.Context, playerName, playerID string, settings engine.Settings) (*CreateResult, error) {
	if playerID == "" {
		playerID = uuid.New().String()
	}

	for attempt := 0; attempt < createIDAttempts; attempt++ {
		s.rngMu.Lock()
		session, err := engine.NewSession(newSessionID(), playerName, playerID, settings, s.rng)
		s.rngMu.Unlock()
		if err != nil {
			return nil, err
		}

		err = s.store.Create(ctx, session)
		if errors.Is(err, storage.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}

		metrics.SessionsCreated.Inc()
		metrics.PlayersJoined.Inc()
		s.log.Info().
			Str("session_id", session.ID).
			Str("player_id", playerID).
			Str("dictionary", session.Settings.Dictionary).
			Msg("session created")

		return &CreateResult{
			SessionID: session.ID,
			PlayerID:  playerID,
			Session:   session,
		}, nil
	}

	return nil, fmt.Errorf("failed to allocate a session id after %d attempts", createIDAttempts)
}

// JoinSession adds a player to an existing session. Joining again with the
// same player ID is a reconnect and leaves the session untouched.
func (s *gameServiceImpl) JoinSession(ctx context.Context, sessionID, playerName, playerID string) (*JoinResult, error) {
	if playerID == "" {
		playerID = uuid.New().String()
	}

	rejoined := false
	session, err := s.mutate(ctx, sessionID, func(session *engine.Session) error {
		_, rejoined = session.Players[playerID]
		return session.Join(playerName, playerID)
	})
	if err != nil {
		return nil, err
	}

	if !rejoined {
		metrics.PlayersJoined.Inc()
	}
	s.log.Info().
		Str("session_id", sessionID).
		Str("player_id", playerID).
		Bool("rejoined", rejoined).
		Msg("player joined")

	return &JoinResult{
		SessionID: sessionID,
		PlayerID:  playerID,
		Session:   session,
	}, nil
}

// GetState returns the current session document.
func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*engine.Session, error) {
	return s.store.Get(ctx, sessionID)
}

// ListSessions returns the IDs of all stored sessions.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// ApplyMove commits a move for a player and returns the updated session.
func (s *gameServiceImpl) ApplyMove(ctx context.Context, sessionID, playerID string, placements []engine.Placement) (*engine.Session, error) {
	session, err := s.mutate(ctx, sessionID, func(session *engine.Session) error {
		return session.ApplyMove(playerID, placements)
	})
	if err != nil {
		return nil, err
	}

	metrics.MovesApplied.Inc()
	s.log.Info().
		Str("session_id", sessionID).
		Str("player_id", playerID).
		Int("placements", len(placements)).
		Msg("move applied")

	return session, nil
}

// CheckWord looks up a word in a dictionary without touching any session.
func (s *gameServiceImpl) CheckWord(ctx context.Context, word, dictionaryID string) (*WordCheck, error) {
	valid, err := s.dicts.IsValid(word, dictionaryID)
	if err != nil {
		return nil, err
	}

	result := "invalid"
	if valid {
		result = "valid"
	}
	metrics.WordChecks.WithLabelValues(dictionaryID, result).Inc()

	return &WordCheck{
		Word:       dictionary.Normalize(word),
		Dictionary: dictionaryID,
		Valid:      valid,
	}, nil
}

// ListDictionaries returns all available dictionaries.
func (s *gameServiceImpl) ListDictionaries(ctx context.Context) ([]dictionary.Info, error) {
	return s.dicts.List()
}

// Health reports readiness of storage and word lists.
func (s *gameServiceImpl) Health(ctx context.Context) (*HealthStatus, error) {
	status := &HealthStatus{
		Status:       "ok",
		StorageReady: true,
		Dictionaries: s.dicts.Count(),
	}

	if err := s.store.Ping(ctx); err != nil {
		status.Status = "degraded"
		status.StorageReady = false
		s.log.Warn().Err(err).Msg("storage ping failed")
	}

	return status, nil
}

// mutate runs a load-mutate-commit cycle against the repository, replaying
// the whole cycle on fresh state when the commit loses a version race.
func (s *gameServiceImpl) mutate(ctx context.Context, sessionID string, apply func(*engine.Session) error) (*engine.Session, error) {
	for attempt := 0; ; attempt++ {
		session, err := s.store.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		if err := apply(session); err != nil {
			return nil, err
		}

		err = s.store.Update(ctx, session)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, storage.ErrVersionConflict) {
			return nil, err
		}

		metrics.StorageConflicts.Inc()
		if attempt >= s.retries {
			s.log.Warn().
				Str("session_id", sessionID).
				Int("attempts", attempt+1).
				Msg("session update kept conflicting")
			return nil, ErrStorageConflict
		}

		metrics.StorageRetries.Inc()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * retryBackoff):
		}
	}
}
