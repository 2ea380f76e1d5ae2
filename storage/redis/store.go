// Package redis provides a shared session repository for multi-instance
// deployments, backed by go-redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/cuvinte/scrabble-server/game/engine"
	"github.com/cuvinte/scrabble-server/storage"
)

// Store keeps each session as a JSON document at session:{id} plus a
// separate version counter at session:{id}:version. Updates run inside a
// WATCH on the version key so two writers racing on the same session cannot
// both commit.
type Store struct {
	client *redis.Client
}

// NewStore connects to Redis using a URL such as redis://localhost:6379/0.
func NewStore(ctx context.Context, redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Store{client: client}, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func versionKey(id string) string {
	return fmt.Sprintf("session:%s:version", id)
}

// Create stores a new session at version 1. SetNX on the document key keeps
// creation atomic across instances.
func (s *Store) Create(ctx context.Context, session *engine.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, sessionKey(session.ID), string(data), 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	if !ok {
		return storage.ErrAlreadyExists
	}

	if err := s.client.Set(ctx, versionKey(session.ID), 1, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	session.Version = 1
	return nil
}

// Get loads the session document and its current version.
func (s *Store) Get(ctx context.Context, id string) (*engine.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	version, err := s.client.Get(ctx, versionKey(id)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			version = 1
		} else {
			return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
		}
	}

	session := &engine.Session{}
	if err := json.Unmarshal([]byte(data), session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	session.Version = version

	return session, nil
}

// Update commits the session only when the stored version still matches the
// one the caller loaded.
func (s *Store) Update(ctx context.Context, session *engine.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	vkey := versionKey(session.ID)
	txn := func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, vkey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return storage.ErrNotFound
			}
			return err
		}
		storedVersion, err := strconv.ParseInt(stored, 10, 64)
		if err != nil {
			return fmt.Errorf("parse stored version: %w", err)
		}
		if storedVersion != session.Version {
			return storage.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey(session.ID), string(data), 0)
			pipe.Set(ctx, vkey, storedVersion+1, 0)
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txn, vkey); err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return storage.ErrVersionConflict
		}
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	session.Version++
	return nil
}

// List scans for session document keys, skipping version counters.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids := []string{}
	iter := s.client.Scan(ctx, 0, "session:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasSuffix(key, ":version") {
			continue
		}
		ids = append(ids, strings.TrimPrefix(key, "session:"))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	sort.Strings(ids)

	return ids, nil
}

// Ping checks the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ storage.Repository = (*Store)(nil)
