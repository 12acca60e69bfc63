package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// DocumentService manages documents held by the server.
type DocumentService interface {
	// List returns all documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Upload sends content under filename.
	Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)

	// UploadFile uploads the file at path under its base name.
	UploadFile(ctx context.Context, path string) (*domain.Document, error)

	// Delete removes a document. Callers confirm with the user first.
	Delete(ctx context.Context, id string) error
}
