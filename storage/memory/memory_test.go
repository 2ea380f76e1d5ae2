package memory

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/cuvinte/scrabble-server/game/engine"
	"github.com/cuvinte/scrabble-server/storage"
)

func testSession(t *testing.T, id string) *engine.Session {
	t.Helper()
	session, err := engine.NewSession(id, "Ana", "ana", engine.Settings{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return session
}

func TestCreate(t *testing.T) {
	store := New()
	ctx := context.Background()
	session := testSession(t, "s1")

	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.Version != 1 {
		t.Errorf("Expected version 1 after create, got %d", session.Version)
	}

	if err := store.Create(ctx, session); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
}

func TestGet(t *testing.T) {
	store := New()
	ctx := context.Background()
	session := testSession(t, "s1")
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("returns stored session", func(t *testing.T) {
		got, err := store.Get(ctx, "s1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.ID != "s1" || got.Version != 1 {
			t.Errorf("Unexpected session: id=%s version=%d", got.ID, got.Version)
		}
	})

	t.Run("unknown ID", func(t *testing.T) {
		if _, err := store.Get(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("callers do not alias stored state", func(t *testing.T) {
		got, _ := store.Get(ctx, "s1")
		got.Bag = nil
		got.Players["ana"].Rack = nil

		fresh, _ := store.Get(ctx, "s1")
		if len(fresh.Bag) == 0 {
			t.Error("Mutating a returned session changed the stored bag")
		}
		if len(fresh.Players["ana"].Rack) == 0 {
			t.Error("Mutating a returned session changed a stored rack")
		}
	})
}

func TestUpdate(t *testing.T) {
	store := New()
	ctx := context.Background()
	if err := store.Create(ctx, testSession(t, "s1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("matching version commits and bumps", func(t *testing.T) {
		session, _ := store.Get(ctx, "s1")
		if err := session.Join("Bob", "bob"); err != nil {
			t.Fatalf("Join failed: %v", err)
		}

		if err := store.Update(ctx, session); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if session.Version != 2 {
			t.Errorf("Expected version 2 after update, got %d", session.Version)
		}

		fresh, _ := store.Get(ctx, "s1")
		if len(fresh.Players) != 2 {
			t.Errorf("Expected committed join to persist, got %d players", len(fresh.Players))
		}
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		first, _ := store.Get(ctx, "s1")
		second, _ := store.Get(ctx, "s1")

		if err := first.Join("Carla", "carla"); err != nil {
			t.Fatalf("Join failed: %v", err)
		}
		if err := store.Update(ctx, first); err != nil {
			t.Fatalf("First update failed: %v", err)
		}

		if err := second.Join("Dan", "dan"); err != nil {
			t.Fatalf("Join failed: %v", err)
		}
		if err := store.Update(ctx, second); !errors.Is(err, storage.ErrVersionConflict) {
			t.Errorf("Expected ErrVersionConflict for stale update, got %v", err)
		}

		// The losing write must not have clobbered the winner.
		fresh, _ := store.Get(ctx, "s1")
		if _, ok := fresh.Players["carla"]; !ok {
			t.Error("Winning update was lost")
		}
		if _, ok := fresh.Players["dan"]; ok {
			t.Error("Losing update was committed")
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		ghost := testSession(t, "ghost")
		ghost.Version = 1
		if err := store.Update(ctx, ghost); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestList(t *testing.T) {
	store := New()
	ctx := context.Background()

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected empty list, got %v", ids)
	}

	store.Create(ctx, testSession(t, "b"))
	store.Create(ctx, testSession(t, "a"))

	ids, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("Expected sorted [a b], got %v", ids)
	}
}
