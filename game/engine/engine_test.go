package engine

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func createTestSession(t *testing.T, settings Settings) *Session {
	t.Helper()
	session, err := NewSession("abc12345", "Ana", "ana", settings, testRNG())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return session
}

// assertConservation checks that racks + bag + occupied cells account for
// every tile the bag was built with.
func assertConservation(t *testing.T, s *Session, want int) {
	t.Helper()
	if got := s.TileCount(); got != want {
		t.Errorf("Tile conservation broken: counted %d tiles, expected %d", got, want)
	}
}

func TestNewSession(t *testing.T) {
	t.Run("defaults applied for zero settings", func(t *testing.T) {
		session := createTestSession(t, Settings{})

		if session.Settings.MaxPlayers != DefaultMaxPlayers {
			t.Errorf("Expected max_players %d, got %d", DefaultMaxPlayers, session.Settings.MaxPlayers)
		}
		if session.Settings.RackSize != DefaultRackSize {
			t.Errorf("Expected rack_size %d, got %d", DefaultRackSize, session.Settings.RackSize)
		}
		if session.Settings.BagSize != DefaultBagSize {
			t.Errorf("Expected bag_size %d, got %d", DefaultBagSize, session.Settings.BagSize)
		}
		if session.Settings.Dictionary != DefaultDictionary {
			t.Errorf("Expected dictionary %q, got %q", DefaultDictionary, session.Settings.Dictionary)
		}
	})

	t.Run("host is seeded with a full rack", func(t *testing.T) {
		session := createTestSession(t, Settings{})

		host := session.Players["ana"]
		if host == nil {
			t.Fatal("Expected creator to be a member")
		}
		if !host.IsHost {
			t.Error("Expected creator to be host")
		}
		if !host.Online {
			t.Error("Expected creator to be online")
		}
		if len(host.Rack) != DefaultRackSize {
			t.Errorf("Expected rack of %d, got %d", DefaultRackSize, len(host.Rack))
		}
		if len(session.Bag) != DefaultBagSize-DefaultRackSize {
			t.Errorf("Expected bag of %d, got %d", DefaultBagSize-DefaultRackSize, len(session.Bag))
		}
		if !reflect.DeepEqual(session.TurnOrder, []string{"ana"}) {
			t.Errorf("Expected turn order [ana], got %v", session.TurnOrder)
		}
		if session.CurrentTurnIndex != 0 {
			t.Errorf("Expected turn index 0, got %d", session.CurrentTurnIndex)
		}
		if session.GameStarted {
			t.Error("Expected game_started to be false on creation")
		}
		if len(session.ChatHistory) != 1 {
			t.Errorf("Expected one system chat entry, got %d", len(session.ChatHistory))
		}
		assertConservation(t, session, DefaultBagSize)
	})

	t.Run("rack limited by tiny bag", func(t *testing.T) {
		session := createTestSession(t, Settings{BagSize: 3})
		if len(session.Players["ana"].Rack) != 3 {
			t.Errorf("Expected rack of 3 from a 3-tile bag, got %d", len(session.Players["ana"].Rack))
		}
		if len(session.Bag) != 0 {
			t.Errorf("Expected empty bag, got %d tiles", len(session.Bag))
		}
	})

	t.Run("invalid settings rejected", func(t *testing.T) {
		cases := []Settings{
			{MaxPlayers: -1},
			{RackSize: -2},
			{BagSize: -10},
		}
		for _, settings := range cases {
			if _, err := NewSession("x", "Ana", "ana", settings, testRNG()); !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Expected ErrInvalidSettings for %+v, got %v", settings, err)
			}
		}
	})

	t.Run("empty name defaults to Player", func(t *testing.T) {
		session, err := NewSession("x", "", "p1", Settings{}, testRNG())
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.Players["p1"].Name != "Player" {
			t.Errorf("Expected default name, got %q", session.Players["p1"].Name)
		}
	})
}

func TestJoin(t *testing.T) {
	t.Run("join deals a rack and appends turn order", func(t *testing.T) {
		session := createTestSession(t, Settings{MaxPlayers: 2, BagSize: 20})
		bagBefore := len(session.Bag)

		if err := session.Join("Bob", "bob"); err != nil {
			t.Fatalf("Failed to join: %v", err)
		}

		bob := session.Players["bob"]
		if bob == nil {
			t.Fatal("Expected bob to be a member")
		}
		if bob.IsHost {
			t.Error("Expected joiner not to be host")
		}
		if len(bob.Rack) != DefaultRackSize {
			t.Errorf("Expected rack of %d, got %d", DefaultRackSize, len(bob.Rack))
		}
		if len(session.Bag) != bagBefore-DefaultRackSize {
			t.Errorf("Expected bag reduced by %d, got %d left", DefaultRackSize, len(session.Bag))
		}
		if !reflect.DeepEqual(session.TurnOrder, []string{"ana", "bob"}) {
			t.Errorf("Expected turn order [ana bob], got %v", session.TurnOrder)
		}
		assertConservation(t, session, 20)
	})

	t.Run("capacity enforced", func(t *testing.T) {
		session := createTestSession(t, Settings{MaxPlayers: 2})

		if err := session.Join("Bob", "bob"); err != nil {
			t.Fatalf("Second player should fit: %v", err)
		}
		if err := session.Join("Carla", "carla"); !errors.Is(err, ErrSessionFull) {
			t.Errorf("Expected ErrSessionFull for third player, got %v", err)
		}
		if len(session.Players) != 2 {
			t.Errorf("Expected 2 players after rejected join, got %d", len(session.Players))
		}
	})

	t.Run("re-join is idempotent", func(t *testing.T) {
		session := createTestSession(t, Settings{MaxPlayers: 4})
		if err := session.Join("Bob", "bob"); err != nil {
			t.Fatalf("Failed to join: %v", err)
		}

		bagBefore := len(session.Bag)
		rackBefore := len(session.Players["bob"].Rack)
		orderBefore := append([]string(nil), session.TurnOrder...)

		if err := session.Join("Bob", "bob"); err != nil {
			t.Fatalf("Re-join should succeed: %v", err)
		}

		if len(session.Bag) != bagBefore {
			t.Error("Re-join must not deal tiles")
		}
		if len(session.Players["bob"].Rack) != rackBefore {
			t.Error("Re-join must not change the rack")
		}
		if !reflect.DeepEqual(session.TurnOrder, orderBefore) {
			t.Errorf("Re-join must not touch turn order: %v", session.TurnOrder)
		}
	})

	t.Run("join with empty bag deals nothing", func(t *testing.T) {
		session := createTestSession(t, Settings{MaxPlayers: 3, BagSize: 7})
		if err := session.Join("Bob", "bob"); err != nil {
			t.Fatalf("Failed to join: %v", err)
		}
		if len(session.Players["bob"].Rack) != 0 {
			t.Errorf("Expected empty rack from empty bag, got %d tiles", len(session.Players["bob"].Rack))
		}
		assertConservation(t, session, 7)
	})
}

func TestCurrentPlayer(t *testing.T) {
	session := createTestSession(t, Settings{})

	current, err := session.CurrentPlayer()
	if err != nil {
		t.Fatalf("CurrentPlayer failed: %v", err)
	}
	if current != "ana" {
		t.Errorf("Expected ana, got %s", current)
	}

	t.Run("empty turn order is an invariant violation", func(t *testing.T) {
		corrupted := session.Clone()
		corrupted.TurnOrder = nil
		if _, err := corrupted.CurrentPlayer(); !errors.Is(err, ErrEmptyTurnOrder) {
			t.Errorf("Expected ErrEmptyTurnOrder, got %v", err)
		}
	})
}

func TestClone(t *testing.T) {
	session := createTestSession(t, Settings{MaxPlayers: 2, BagSize: 30})
	if err := session.Join("Bob", "bob"); err != nil {
		t.Fatalf("Failed to join: %v", err)
	}
	session.Board[CellKey(7, 7)] = Cell{Letter: "A"}

	clone := session.Clone()
	clone.Bag = clone.Bag[:1]
	clone.Players["bob"].Rack = nil
	clone.Board[CellKey(0, 0)] = Cell{Letter: "Z"}
	clone.TurnOrder = append(clone.TurnOrder, "ghost")

	if len(session.Bag) == 1 {
		t.Error("Clone shares bag with original")
	}
	if session.Players["bob"].Rack == nil {
		t.Error("Clone shares rack with original")
	}
	if _, ok := session.Board[CellKey(0, 0)]; ok {
		t.Error("Clone shares board with original")
	}
	if len(session.TurnOrder) != 2 {
		t.Error("Clone shares turn order with original")
	}
}

func TestCellKey(t *testing.T) {
	key := CellKey(7, 12)
	if key != "7_12" {
		t.Errorf("Expected 7_12, got %s", key)
	}

	row, col, err := ParseCellKey(key)
	if err != nil {
		t.Fatalf("ParseCellKey failed: %v", err)
	}
	if row != 7 || col != 12 {
		t.Errorf("Expected (7,12), got (%d,%d)", row, col)
	}

	if _, _, err := ParseCellKey("bogus"); err == nil {
		t.Error("Expected error for malformed key")
	}
}
