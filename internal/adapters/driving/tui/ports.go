// Package tui provides the interactive terminal client for docdesk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"fmt"

	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Documents lists, uploads and deletes documents.
	Documents driving.DocumentService

	// Search runs keyword searches.
	Search driving.SearchService

	// Chat answers questions about the documents.
	Chat driving.ChatService

	// Settings supplies input policies and the notification timeout.
	// Optional; defaults apply when nil.
	Settings driving.SettingsService

	// ServerURL is the document server in use when it differs from the
	// stored server.url, such as a --server override. Optional.
	ServerURL string
}

// NewPorts creates a Ports aggregate with the given services.
func NewPorts(
	documents driving.DocumentService,
	search driving.SearchService,
	chat driving.ChatService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Documents: documents,
		Search:    search,
		Chat:      chat,
		Settings:  settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Documents == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingDocumentService)
	}
	if p.Search == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingSearchService)
	}
	if p.Chat == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingChatService)
	}
	return nil
}
