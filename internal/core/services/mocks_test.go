package services

import (
	"context"
	"io"

	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driven"
)

var _ driven.Backend = (*mockBackend)(nil)

// mockBackend records the arguments it receives and delegates to
// optional function fields.
type mockBackend struct {
	listFn   func(ctx context.Context) ([]domain.Document, error)
	uploadFn func(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)
	deleteFn func(ctx context.Context, id string) error
	searchFn func(ctx context.Context, query domain.SearchQuery) (*domain.SearchResults, error)
	chatFn   func(ctx context.Context, message string) (*domain.ChatReply, error)

	searchQueries []domain.SearchQuery
	chatMessages  []string
	deletedIDs    []string
}

func (m *mockBackend) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockBackend) UploadDocument(ctx context.Context, filename string, content io.Reader) (*domain.Document, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, filename, content)
	}
	return &domain.Document{ID: "doc-1", Filename: filename}, nil
}

func (m *mockBackend) DeleteDocument(ctx context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockBackend) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResults, error) {
	m.searchQueries = append(m.searchQueries, query)
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return &domain.SearchResults{Query: query.Query}, nil
}

func (m *mockBackend) Chat(ctx context.Context, message string) (*domain.ChatReply, error) {
	m.chatMessages = append(m.chatMessages, message)
	if m.chatFn != nil {
		return m.chatFn(ctx, message)
	}
	return &domain.ChatReply{Response: "ok"}, nil
}
