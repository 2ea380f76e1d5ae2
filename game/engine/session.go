package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cuvinte/scrabble-server/game/letters"
)

// NewSession creates a forming session seeded with its host player.
//
// The bag is built from the letter distribution truncated to the configured
// size and shuffled with rng, then min(rack_size, |bag|) tiles are dealt to
// the creator. Zero-valued settings take the documented defaults; invalid
// settings fail with ErrInvalidSettings.
func NewSession(id, playerName, playerID string, settings Settings, rng *rand.Rand) (*Session, error) {
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if playerName == "" {
		playerName = "Player"
	}

	bag := letters.Build(settings.BagSize, rng)
	rack, bag := letters.Deal(bag, settings.RackSize)

	now := time.Now().UTC()
	session := &Session{
		ID:    id,
		Board: make(map[string]Cell),
		Bag:   bag,
		Players: map[string]*Player{
			playerID: {
				ID:     playerID,
				Name:   playerName,
				Rack:   rack,
				Online: true,
				IsHost: true,
			},
		},
		TurnOrder:        []string{playerID},
		CurrentTurnIndex: 0,
		GameStarted:      false,
		Settings:         settings,
		ChatHistory:      []string{fmt.Sprintf("System: %s created the session.", playerName)},
		CreatedAt:        now,
		LastUpdate:       now,
	}

	return session, nil
}

// Join adds a player to the session.
//
// Joining with an ID that is already a member is a no-op success, so a
// reconnecting client never gets a second rack or a second turn slot. A new
// player fails with ErrSessionFull at capacity; otherwise they receive
// min(rack_size, |bag|) tiles and a seat at the end of the turn order.
func (s *Session) Join(playerName, playerID string) error {
	if _, ok := s.Players[playerID]; ok {
		return nil
	}

	if len(s.Players) >= s.Settings.MaxPlayers {
		return ErrSessionFull
	}
	if playerName == "" {
		playerName = "Player"
	}

	rack, bag := letters.Deal(s.Bag, s.Settings.RackSize)
	s.Bag = bag
	s.Players[playerID] = &Player{
		ID:     playerID,
		Name:   playerName,
		Rack:   rack,
		Online: true,
		IsHost: false,
	}
	s.TurnOrder = append(s.TurnOrder, playerID)
	s.ChatHistory = append(s.ChatHistory, fmt.Sprintf("System: %s joined.", playerName))
	s.LastUpdate = time.Now().UTC()

	return nil
}

// CurrentPlayer returns the ID of the player whose turn it is.
func (s *Session) CurrentPlayer() (string, error) {
	if len(s.TurnOrder) == 0 {
		return "", ErrEmptyTurnOrder
	}
	return s.TurnOrder[s.CurrentTurnIndex%len(s.TurnOrder)], nil
}

// advanceTurn moves the turn to the next player in rotation. Only a
// successful move application calls it.
func (s *Session) advanceTurn() {
	s.CurrentTurnIndex = (s.CurrentTurnIndex + 1) % len(s.TurnOrder)
}
