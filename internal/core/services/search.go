package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService runs keyword searches against the server.
type SearchService struct {
	backend driven.Backend
}

// NewSearchService creates a new search service.
func NewSearchService(backend driven.Backend) *SearchService {
	return &SearchService{backend: backend}
}

// Search trims query and requests the fixed result page.
func (s *SearchService) Search(ctx context.Context, query string) (*domain.SearchResults, error) {
	query = strings.TrimSpace(query)
	logger.Section("Search")
	logger.Debug("Query: %q", query)

	if query == "" {
		logger.Debug("Empty query, not sending a request")
		return nil, domain.ErrEmptyQuery
	}

	results, err := s.backend.Search(ctx, domain.SearchQuery{
		Query:      query,
		MaxResults: domain.DefaultMaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if results.Query == "" {
		results.Query = query
	}
	logger.Debug("Total results: %d, returned: %d", results.TotalResults, len(results.Hits))
	return results, nil
}
