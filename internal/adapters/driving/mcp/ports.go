package mcp

import (
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes.
type Ports struct {
	// Search backs the search_documents tool.
	Search driving.SearchService

	// Chat backs the ask_documents tool. Optional.
	Chat driving.ChatService

	// Documents backs list_documents and the document resources. Optional.
	Documents driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrMissingPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
