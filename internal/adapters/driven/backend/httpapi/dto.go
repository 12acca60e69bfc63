package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// documentDTO is a document as the server sends it.
type documentDTO struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	UploadTime string `json:"upload_time"`
	WordCount  *int   `json:"word_count"`
	FileType   string `json:"file_type"`
}

func (d documentDTO) toDomain() domain.Document {
	var uploaded time.Time
	if d.UploadTime != "" {
		// An unparseable timestamp renders as N/A rather than failing the list.
		if t, err := domain.ParseTimestamp(d.UploadTime); err == nil {
			uploaded = t
		}
	}
	return domain.Document{
		ID:         d.ID,
		Filename:   d.Filename,
		Size:       d.Size,
		UploadTime: uploaded,
		WordCount:  d.WordCount,
		FileType:   d.FileType,
	}
}

// documentsEnvelope is the {"documents": [...]} list response.
type documentsEnvelope struct {
	Documents []documentDTO `json:"documents"`
}

// uploadResponse is the upload response. Servers either wrap the document
// in {"document": ...} or return it bare.
type uploadResponse struct {
	Success  *bool        `json:"success"`
	Message  string       `json:"message"`
	Document *documentDTO `json:"document"`
	documentDTO
}

// searchRequest is the search request body.
type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// searchHitDTO is one search hit. Older servers send up to three
// highlighted matches instead of one snippet.
type searchHitDTO struct {
	ID             string   `json:"id"`
	Filename       string   `json:"filename"`
	ContentSnippet string   `json:"content_snippet"`
	Matches        []string `json:"matches"`
}

// searchResponse is the search response body.
type searchResponse struct {
	Query        string         `json:"query"`
	TotalResults *int           `json:"total_results"`
	Total        *int           `json:"total"`
	Results      []searchHitDTO `json:"results"`
}

func (r searchResponse) toDomain(query string) *domain.SearchResults {
	results := &domain.SearchResults{
		Query: r.Query,
		Hits:  make([]domain.SearchHit, 0, len(r.Results)),
	}
	if results.Query == "" {
		results.Query = query
	}

	for _, h := range r.Results {
		snippet := h.ContentSnippet
		if snippet == "" && len(h.Matches) > 0 {
			snippet = strings.Join(h.Matches, " … ")
		}
		results.Hits = append(results.Hits, domain.SearchHit{
			DocumentID:     h.ID,
			Filename:       h.Filename,
			ContentSnippet: domain.StripMarks(snippet),
		})
	}

	switch {
	case r.TotalResults != nil:
		results.TotalResults = *r.TotalResults
	case r.Total != nil:
		results.TotalResults = *r.Total
	default:
		results.TotalResults = len(results.Hits)
	}
	return results
}

// chatRequest is the chat request body.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the chat response body.
type chatResponse struct {
	Response *string  `json:"response"`
	Answer   *string  `json:"answer"`
	Sources  []string `json:"sources"`
}

func (r chatResponse) toDomain() (*domain.ChatReply, error) {
	reply := &domain.ChatReply{Sources: r.Sources}
	switch {
	case r.Response != nil:
		reply.Response = *r.Response
	case r.Answer != nil:
		reply.Response = *r.Answer
	default:
		return nil, fmt.Errorf("%w: chat reply has no response", ErrUnexpectedShape)
	}
	return reply, nil
}

// decodeDocuments decodes a document list according to shape.
func decodeDocuments(body []byte, shape domain.ResponseShape) ([]domain.Document, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document list body", ErrUnexpectedShape)
	}

	var dtos []documentDTO
	switch trimmed[0] {
	case '[':
		if shape == domain.ShapeEnvelope {
			return nil, fmt.Errorf("%w: expected {\"documents\": [...]}, got an array", ErrUnexpectedShape)
		}
		if err := json.Unmarshal(trimmed, &dtos); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	case '{':
		if shape == domain.ShapeArray {
			return nil, fmt.Errorf("%w: expected an array, got an object", ErrUnexpectedShape)
		}
		var env documentsEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		dtos = env.Documents
	default:
		return nil, fmt.Errorf("%w: document list is neither an array nor an object", ErrUnexpectedShape)
	}

	docs := make([]domain.Document, 0, len(dtos))
	for _, d := range dtos {
		docs = append(docs, d.toDomain())
	}
	return docs, nil
}

// decodeUpload decodes an upload response.
func decodeUpload(body []byte, status int) (*domain.Document, error) {
	var resp uploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Success != nil && !*resp.Success {
		return nil, &domain.APIError{StatusCode: status, Detail: resp.Message}
	}

	dto := resp.documentDTO
	if resp.Document != nil {
		dto = *resp.Document
	}
	if dto.ID == "" && dto.Filename == "" {
		return nil, fmt.Errorf("%w: upload response has no document", ErrUnexpectedShape)
	}
	doc := dto.toDomain()
	return &doc, nil
}
