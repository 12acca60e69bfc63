package driving

import (
	"context"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// SearchService provides keyword search over stored documents.
type SearchService interface {
	// Search trims query and returns up to domain.DefaultMaxResults hits.
	// A blank query fails with domain.ErrEmptyQuery before any request.
	Search(ctx context.Context, query string) (*domain.SearchResults, error)
}
