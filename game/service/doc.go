// Package service provides the business logic layer for the word game server.
//
// The service package implements:
//   - Session creation, joining, and listing
//   - Move orchestration against the rules engine
//   - Dictionary word checks
//   - Health reporting for stores and word lists
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. It sits between the transport layer (HTTP/WebSocket/MCP) and
// the engine, loading sessions from a storage.Repository, applying engine
// mutations, and committing them back.
//
// Concurrency:
//
// Every mutation runs a load-mutate-commit cycle against the repository.
// The repository rejects commits made against a stale version, and the
// service retries the whole cycle on fresh state a bounded number of times.
// Two clients racing on the same session therefore both land, in some
// order, or the loser receives ErrStorageConflict.
//
// Usage:
//
//	store := memory.New()
//	dicts, err := dictionary.NewManager("dictionaries")
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc := service.NewGameService(store, dicts, logger, 0)
//
//	created, err := svc.CreateSession(ctx, "Ana", "", engine.Settings{})
package service
