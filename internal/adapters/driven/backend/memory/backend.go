// Package memory provides an in-memory document server implementing
// driven.Backend. It keeps uploaded content so search and chat behave
// like a small real server, and counts calls so tests can assert which
// requests were made.
package memory

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driven"
)

// Ensure Backend implements the interface.
var _ driven.Backend = (*Backend)(nil)

// snippetContext is the number of runes kept on each side of a match.
const snippetContext = 50

// Calls counts requests per operation.
type Calls struct {
	List   int
	Upload int
	Delete int
	Search int
	Chat   int
}

type entry struct {
	doc     domain.Document
	content string
}

// Backend is an in-memory document server.
type Backend struct {
	mu      sync.RWMutex
	entries map[string]*entry
	calls   Calls
	err     error
	now     func() time.Time
}

// New creates an empty backend.
func New() *Backend {
	return &Backend{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// SetClock overrides the time source used for upload timestamps.
func (b *Backend) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (b *Backend) FailWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

// Calls returns a snapshot of the call counters.
func (b *Backend) Calls() Calls {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.calls
}

// Add stores a document with content directly, bypassing counters.
func (b *Backend) Add(filename, content string) domain.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store(filename, content)
}

// ListDocuments returns documents ordered by upload time.
func (b *Backend) ListDocuments(_ context.Context) ([]domain.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.List++
	if b.err != nil {
		return nil, b.err
	}

	docs := make([]domain.Document, 0, len(b.entries))
	for _, e := range b.entries {
		docs = append(docs, e.doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].UploadTime.Equal(docs[j].UploadTime) {
			return docs[i].Filename < docs[j].Filename
		}
		return docs[i].UploadTime.Before(docs[j].UploadTime)
	})
	return docs, nil
}

// UploadDocument reads content and stores it under a new id.
func (b *Backend) UploadDocument(_ context.Context, filename string, content io.Reader) (*domain.Document, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.Upload++
	if b.err != nil {
		return nil, b.err
	}

	doc := b.store(filename, string(data))
	return &doc, nil
}

// DeleteDocument removes a document; unknown ids are a 404.
func (b *Backend) DeleteDocument(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.Delete++
	if b.err != nil {
		return b.err
	}

	if _, ok := b.entries[id]; !ok {
		return &domain.APIError{StatusCode: http.StatusNotFound, Detail: "document not found"}
	}
	delete(b.entries, id)
	return nil
}

// Search matches the query case-insensitively against stored content.
func (b *Backend) Search(_ context.Context, query domain.SearchQuery) (*domain.SearchResults, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.Search++
	if b.err != nil {
		return nil, b.err
	}

	term := strings.TrimSpace(query.Query)
	if term == "" {
		return nil, &domain.APIError{StatusCode: http.StatusBadRequest, Detail: "query is required"}
	}

	results := &domain.SearchResults{Query: term, Hits: []domain.SearchHit{}}
	for _, e := range b.sorted() {
		snippet, ok := snippetAround(e.content, term)
		if !ok {
			continue
		}
		results.TotalResults++
		if query.MaxResults > 0 && len(results.Hits) >= query.MaxResults {
			continue
		}
		results.Hits = append(results.Hits, domain.SearchHit{
			DocumentID:     e.doc.ID,
			Filename:       e.doc.Filename,
			ContentSnippet: snippet,
		})
	}
	return results, nil
}

// Chat answers with the documents that mention words of the message.
func (b *Backend) Chat(_ context.Context, message string) (*domain.ChatReply, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls.Chat++
	if b.err != nil {
		return nil, b.err
	}

	if len(b.entries) == 0 {
		return &domain.ChatReply{Response: "No documents have been uploaded yet."}, nil
	}

	var sources []string
	for _, e := range b.sorted() {
		for _, word := range strings.Fields(message) {
			if len(word) < 3 {
				continue
			}
			if _, ok := snippetAround(e.content, word); ok {
				sources = append(sources, e.doc.Filename)
				break
			}
		}
	}

	if len(sources) == 0 {
		return &domain.ChatReply{Response: "I could not find an answer in the uploaded documents."}, nil
	}
	return &domain.ChatReply{
		Response: fmt.Sprintf("Relevant passages were found in %s.", strings.Join(sources, ", ")),
		Sources:  sources,
	}, nil
}

// store must be called with the lock held.
func (b *Backend) store(filename, content string) domain.Document {
	words := len(strings.Fields(content))
	doc := domain.Document{
		ID:         uuid.NewString(),
		Filename:   filename,
		Size:       int64(len(content)),
		UploadTime: b.now(),
		WordCount:  &words,
		FileType:   strings.ToLower(filepath.Ext(filename)),
	}
	b.entries[doc.ID] = &entry{doc: doc, content: content}
	return doc
}

// sorted must be called with the lock held.
func (b *Backend) sorted() []*entry {
	out := make([]*entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].doc.UploadTime.Before(out[j].doc.UploadTime) ||
			(out[i].doc.UploadTime.Equal(out[j].doc.UploadTime) && out[i].doc.Filename < out[j].doc.Filename)
	})
	return out
}

// snippetAround returns the text surrounding the first case-insensitive
// occurrence of term.
func snippetAround(content, term string) (string, bool) {
	segments := domain.HighlightSegments(content, term)
	runes := 0
	for _, seg := range segments {
		if seg.Match {
			text := []rune(content)
			start := max(0, runes-snippetContext)
			end := min(len(text), runes+len([]rune(seg.Text))+snippetContext)
			return strings.TrimSpace(string(text[start:end])), true
		}
		runes += len([]rune(seg.Text))
	}
	return "", false
}
