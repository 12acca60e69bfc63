package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results *domain.SearchResults
	err     error
	query   string
}

func (m *mockSearchService) Search(_ context.Context, query string) (*domain.SearchResults, error) {
	m.query = query
	if m.err != nil {
		return nil, m.err
	}
	if m.results == nil {
		return &domain.SearchResults{Query: query}, nil
	}
	return m.results, nil
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	reply   *domain.ChatReply
	err     error
	message string
}

func (m *mockChatService) Send(_ context.Context, message string) (*domain.ChatReply, error) {
	m.message = message
	return m.reply, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	err       error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Upload(_ context.Context, _ string, _ io.Reader) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) UploadFile(_ context.Context, _ string) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}
