package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/custodia-labs/docdesk/internal/adapters/driven/backend/memory"
	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// testServer serves the document API from an in-memory backend and
// counts requests per method and path.
type testServer struct {
	*httptest.Server
	backend *memory.Backend

	mu       sync.Mutex
	requests map[string]int
	headers  []http.Header
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{backend: memory.New(), requests: make(map[string]int)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/documents", func(w http.ResponseWriter, r *http.Request) {
		docs, err := ts.backend.ListDocuments(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]map[string]any, 0, len(docs))
		for _, d := range docs {
			out = append(out, documentJSON(d))
		}
		writeJSON(w, http.StatusOK, map[string]any{"documents": out})
	})
	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "no file"})
			return
		}
		defer f.Close()
		doc, err := ts.backend.UploadDocument(r.Context(), hdr.Filename, f)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "document": documentJSON(*doc)})
	})
	mux.HandleFunc("DELETE /api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := ts.backend.DeleteDocument(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	mux.HandleFunc("POST /api/search", func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		res, err := ts.backend.Search(r.Context(), domain.SearchQuery{Query: req.Query, MaxResults: req.MaxResults})
		if err != nil {
			writeError(w, err)
			return
		}
		hits := make([]map[string]any, 0, len(res.Hits))
		for _, h := range res.Hits {
			hits = append(hits, map[string]any{"id": h.DocumentID, "filename": h.Filename, "content_snippet": h.ContentSnippet})
		}
		writeJSON(w, http.StatusOK, map[string]any{"query": res.Query, "total_results": res.TotalResults, "results": hits})
	})
	mux.HandleFunc("POST /api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		reply, err := ts.backend.Chat(r.Context(), req.Message)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"response": reply.Response, "sources": reply.Sources})
	})

	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		ts.requests[r.Method+" "+r.URL.Path]++
		ts.headers = append(ts.headers, r.Header.Clone())
		ts.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) count(methodPath string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.requests[methodPath]
}

func (ts *testServer) requestHeaders() []http.Header {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.headers
}

func documentJSON(d domain.Document) map[string]any {
	m := map[string]any{
		"id":          d.ID,
		"filename":    d.Filename,
		"size":        d.Size,
		"upload_time": d.UploadTime.Format("2006-01-02T15:04:05.999999"),
		"file_type":   strings.TrimPrefix(d.FileType, "."),
	}
	if d.WordCount != nil {
		m["word_count"] = *d.WordCount
	}
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	writeJSON(w, status, map[string]any{"detail": domain.ErrorDetail(err)})
}
