// Package mcp exposes the word game over the Model Context Protocol.
//
// The Server registers one tool per game operation and calls the service
// layer directly, so MCP clients and REST clients share the same semantics
// and the same stored sessions. Tool results are rendered as plain text with
// an ASCII board so language-model clients can read the state without
// parsing JSON.
//
// Usage:
//
//	srv := mcp.NewServer(gameService)
//	server.ServeStdio(srv.GetMCPServer())
package mcp
