// Package api provides the REST surface of the word game server.
//
// Routes are mounted under /api and return JSON. Errors carry a stable
// machine-readable code next to the human-readable message:
//
//	{"error": "it is not this player's turn", "code": "not_your_turn"}
//
// Every committed join or move is also broadcast to WebSocket clients
// watching the session, and all requests are counted and timed in the
// Prometheus registry exposed at /metrics.
package api
