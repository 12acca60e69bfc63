// Package mcp exposes docdesk's document server to MCP clients.
// Assistants can search documents, ask questions and read the document
// list through the same services the TUI and CLI use.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingPorts is returned when NewServer is given nil ports.
var ErrMissingPorts = errors.New("mcp: ports are required")
