// Package engine implements the session state machine for the word game.
//
// The engine package owns:
//   - Session and Player data types and their JSON document shape
//   - Session creation, joining, and move application
//   - Turn rotation and capacity/turn-ownership enforcement
//   - Rack dealing and replenishment against the shared bag
//
// Core Types:
//
// Session is the root aggregate: one game instance with its board, bag,
// players, turn order, and settings. Player holds one participant's rack and
// metadata. Placement describes one tile laid on the board during a move.
//
// State Transitions:
//
// All transitions are pure, synchronous mutations of a Session value loaded
// from storage. NewSession creates a forming session seeded with its host.
// Join adds a player (idempotent for existing members). ApplyMove writes
// placements to the board, deducts rack tiles, replenishes from the bag, and
// advances the turn.
//
// The engine performs no I/O and no locking. Concurrent access to the same
// session is serialized by the storage layer's optimistic versioning plus
// the service's bounded retry loop.
//
// Out of Scope:
//
// Scoring, word legality (adjacency, connectivity, center start), and a
// terminal game state are intentionally not implemented. Player.Score, the
// letters.Points table, and Session.GameStarted are the extension points a
// rules layer would build on.
package engine
