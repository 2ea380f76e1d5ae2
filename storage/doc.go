// Package storage defines the session repository contract shared by all
// store implementations.
//
// A Repository holds the authoritative session document keyed by session ID
// and enforces optimistic concurrency: every stored session carries a
// version, Get returns it, and Update commits only when the stored version
// still matches the one the caller loaded. Two clients racing to mutate the
// same session cannot silently overwrite each other; the loser receives
// ErrVersionConflict and the service layer retries against fresh state.
//
// Implementations:
//   - storage/memory: in-process map, the default for development and tests
//   - storage/sqlite: durable single-file store (modernc.org/sqlite)
//   - storage/redis:  shared store for multi-instance deployments (go-redis)
package storage
