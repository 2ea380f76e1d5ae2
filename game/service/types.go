package service

import (
	"github.com/cuvinte/scrabble-server/game/engine"
)

// CreateResult is returned after a session is created. PlayerID is the
// server-assigned identity of the host and must be presented on moves.
type CreateResult struct {
	SessionID string          `json:"session_id"`
	PlayerID  string          `json:"player_id"`
	Session   *engine.Session `json:"session"`
}

// JoinResult is returned after a player joins a session.
type JoinResult struct {
	SessionID string          `json:"session_id"`
	PlayerID  string          `json:"player_id"`
	Session   *engine.Session `json:"session"`
}

// WordCheck is the result of a dictionary lookup.
type WordCheck struct {
	Word       string `json:"word"`
	Dictionary string `json:"dictionary"`
	Valid      bool   `json:"valid"`
}

// HealthStatus reports readiness of the service's dependencies.
type HealthStatus struct {
	Status       string `json:"status"` // "ok" or "degraded"
	StorageReady bool   `json:"storage_ready"`
	Dictionaries int    `json:"dictionaries"`
}
