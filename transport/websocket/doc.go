// Package websocket pushes session updates to connected spectators and
// players.
//
// A central Hub tracks connections grouped by session ID. Clients connect
// with ?session=<id> and receive a JSON message with the full session
// document every time a join or move commits. Incoming client messages are
// not interpreted; all mutations go through the REST or MCP surfaces.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run()
//
//	// after a committed mutation:
//	hub.BroadcastToSession(session.ID, session)
package websocket
