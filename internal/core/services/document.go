package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
	"github.com/custodia-labs/docdesk/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages documents stored on the server.
type DocumentService struct {
	backend driven.Backend
}

// NewDocumentService creates a new document service.
func NewDocumentService(backend driven.Backend) *DocumentService {
	return &DocumentService{backend: backend}
}

// List returns all documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.backend.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	logger.Debug("Listed %d documents", len(docs))
	return docs, nil
}

// Upload sends content under filename.
func (s *DocumentService) Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" || content == nil {
		return nil, domain.ErrNoFile
	}

	doc, err := s.backend.UploadDocument(ctx, filename, content)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	logger.Info("Uploaded %s as %s", filename, doc.ID)
	return doc, nil
}

// UploadFile uploads the file at path under its base name.
func (s *DocumentService) UploadFile(ctx context.Context, path string) (*domain.Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, domain.ErrNoFile
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", path, err)
	}
	defer f.Close()

	return s.Upload(ctx, filepath.Base(path), f)
}

// Delete removes a document by ID.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	if err := s.backend.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	logger.Info("Deleted document %s", id)
	return nil
}
