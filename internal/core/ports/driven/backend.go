package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// Backend is the document server the client talks to.
// Implementations report non-2xx responses as *domain.APIError.
type Backend interface {
	// ListDocuments returns every document the server holds.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// UploadDocument sends a file's content under the given name.
	// The server validates size and type.
	UploadDocument(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)

	// DeleteDocument removes a document by ID.
	DeleteDocument(ctx context.Context, id string) error

	// Search runs a keyword search.
	Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResults, error)

	// Chat asks a question grounded in the stored documents.
	// Each call is independent; no conversation state is sent.
	Chat(ctx context.Context, message string) (*domain.ChatReply, error)
}
