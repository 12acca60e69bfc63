package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

func newClient(t *testing.T, cfg Config) *Client {
	t.Helper()
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

// recorder keeps the requests a canned server received.
type recorder struct {
	mu     sync.Mutex
	reqs   []*http.Request
	bodies []string
}

func (r *recorder) all() ([]*http.Request, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reqs, r.bodies
}

// serve answers every request with status and body.
func serve(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, r.Clone(context.Background()))
		rec.bodies = append(rec.bodies, string(data))
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestNew_InvalidBaseURL(t *testing.T) {
	tests := []string{"", "localhost:8000", "ftp://example.com", "http://"}

	for _, base := range tests {
		_, err := New(Config{BaseURL: base})
		assert.ErrorIs(t, err, ErrInvalidBaseURL, "base %q", base)
	}
}

func TestNew_InvalidShape(t *testing.T) {
	_, err := New(Config{BaseURL: "http://localhost", DocumentsShape: "xml"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := newClient(t, Config{BaseURL: "http://localhost:8000/ "})
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestConfigFromSettings(t *testing.T) {
	s := domain.DefaultSettings()
	s.Server.Token = "tok"
	s.Server.Timeout = time.Second

	cfg := ConfigFromSettings(&s)
	assert.Equal(t, domain.DefaultServerURL, cfg.BaseURL)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, domain.ShapeAuto, cfg.DocumentsShape)
}

func TestClient_UploadThenList(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, Config{BaseURL: ts.URL})
	ctx := context.Background()

	doc, err := c.UploadDocument(ctx, "report.txt", strings.NewReader(strings.Repeat("a", 2048)))
	require.NoError(t, err)
	assert.Equal(t, "report.txt", doc.Filename)
	assert.Equal(t, int64(2048), doc.Size)
	assert.Equal(t, "2 KB", domain.FormatFileSize(doc.Size))
	assert.Equal(t, "1", doc.WordCountLabel())
	assert.False(t, doc.UploadTime.IsZero())

	docs, err := c.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "report.txt", docs[0].Filename)
	assert.Equal(t, doc.ID, docs[0].ID)
}

func TestClient_DeleteDocument(t *testing.T) {
	ts := newTestServer(t)
	doc := ts.backend.Add("a.txt", "alpha")
	c := newClient(t, Config{BaseURL: ts.URL})

	require.NoError(t, c.DeleteDocument(context.Background(), doc.ID))
	assert.Equal(t, 1, ts.count("DELETE /api/documents/"+doc.ID))

	err := c.DeleteDocument(context.Background(), doc.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "document not found", domain.ErrorDetail(err))
}

func TestClient_DeleteDocument_EmptyBody(t *testing.T) {
	srv, rec := serve(t, http.StatusNoContent, "")
	c := newClient(t, Config{BaseURL: srv.URL})

	require.NoError(t, c.DeleteDocument(context.Background(), "a b"))
	reqs, _ := rec.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodDelete, reqs[0].Method)
	assert.Equal(t, "/api/documents/a%20b", reqs[0].URL.EscapedPath())
}

func TestClient_Search(t *testing.T) {
	ts := newTestServer(t)
	ts.backend.Add("fox.txt", "the quick brown fox")
	c := newClient(t, Config{BaseURL: ts.URL})

	res, err := c.Search(context.Background(), domain.SearchQuery{Query: "quick", MaxResults: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalResults)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "fox.txt", res.Hits[0].Filename)
	assert.Equal(t, "the quick brown fox", res.Hits[0].ContentSnippet)
}

func TestClient_Search_ZeroResults(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, Config{BaseURL: ts.URL})

	res, err := c.Search(context.Background(), domain.SearchQuery{Query: "nothing", MaxResults: 10})
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Empty(t, res.Hits)
}

func TestClient_Search_SendsQueryAndPageSize(t *testing.T) {
	srv, rec := serve(t, http.StatusOK, `{"query":"q","total_results":0,"results":[]}`)
	c := newClient(t, Config{BaseURL: srv.URL})

	_, err := c.Search(context.Background(), domain.SearchQuery{Query: "q", MaxResults: 10})
	require.NoError(t, err)
	reqs, bodies := rec.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/search", reqs[0].URL.Path)
	assert.JSONEq(t, `{"query":"q","max_results":10}`, bodies[0])
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))
}

func TestClient_Search_LegacyShape(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{
		"query": "fox",
		"total": 1,
		"results": [{"id": "d1", "filename": "a.txt", "matches": ["a <mark>fox</mark> ran", "another <mark>Fox</mark>"]}]
	}`)
	c := newClient(t, Config{BaseURL: srv.URL})

	res, err := c.Search(context.Background(), domain.SearchQuery{Query: "fox", MaxResults: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalResults)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "d1", res.Hits[0].DocumentID)
	assert.Equal(t, "a fox ran … another Fox", res.Hits[0].ContentSnippet)
}

func TestClient_Search_ErrorDetail(t *testing.T) {
	srv, _ := serve(t, http.StatusBadRequest, `{"detail": "query too short"}`)
	c := newClient(t, Config{BaseURL: srv.URL})

	_, err := c.Search(context.Background(), domain.SearchQuery{Query: "q"})
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "query too short", apiErr.Detail)
}

func TestClient_Chat(t *testing.T) {
	ts := newTestServer(t)
	ts.backend.Add("policy.md", "vacation policy")
	c := newClient(t, Config{BaseURL: ts.URL})

	reply, err := c.Chat(context.Background(), "tell me about vacation")
	require.NoError(t, err)
	assert.Equal(t, []string{"policy.md"}, reply.Sources)
	assert.NotEmpty(t, reply.Response)
}

func TestClient_Chat_LegacyAnswer(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"question": "q", "answer": "forty-two", "sources": ["a"]}`)
	c := newClient(t, Config{BaseURL: srv.URL})

	reply, err := c.Chat(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "forty-two", reply.Response)
	assert.Equal(t, []string{"a"}, reply.Sources)
}

func TestClient_Chat_MissingResponse(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"sources": []}`)
	c := newClient(t, Config{BaseURL: srv.URL})

	_, err := c.Chat(context.Background(), "q")
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestClient_ListDocuments_Shapes(t *testing.T) {
	envelope := `{"documents": [{"id": "1", "filename": "a.txt", "size": 10, "upload_time": "2026-03-01T10:00:00"}]}`
	array := `[{"id": "1", "filename": "a.txt", "size": 10, "upload_time": "2026-03-01T10:00:00Z"}]`

	tests := []struct {
		name    string
		shape   domain.ResponseShape
		body    string
		wantErr bool
	}{
		{"auto envelope", domain.ShapeAuto, envelope, false},
		{"auto array", domain.ShapeAuto, array, false},
		{"envelope ok", domain.ShapeEnvelope, envelope, false},
		{"envelope rejects array", domain.ShapeEnvelope, array, true},
		{"array ok", domain.ShapeArray, array, false},
		{"array rejects envelope", domain.ShapeArray, envelope, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, http.StatusOK, tt.body)
			c := newClient(t, Config{BaseURL: srv.URL, DocumentsShape: tt.shape})

			docs, err := c.ListDocuments(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnexpectedShape)
				return
			}
			require.NoError(t, err)
			require.Len(t, docs, 1)
			assert.Equal(t, "a.txt", docs[0].Filename)
			assert.Equal(t, 2026, docs[0].UploadTime.Year())
			assert.Nil(t, docs[0].WordCount)
		})
	}
}

func TestClient_ListDocuments_EmptyEnvelope(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{}`)
	c := newClient(t, Config{BaseURL: srv.URL})

	docs, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestClient_Upload_Failure(t *testing.T) {
	srv, _ := serve(t, http.StatusBadRequest, `{"detail": "unsupported file type"}`)
	c := newClient(t, Config{BaseURL: srv.URL})

	_, err := c.UploadDocument(context.Background(), "a.exe", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, "unsupported file type", domain.ErrorDetail(err))
}

func TestClient_Upload_SuccessFalse(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"success": false, "message": "processing failed"}`)
	c := newClient(t, Config{BaseURL: srv.URL})

	_, err := c.UploadDocument(context.Background(), "a.txt", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, "processing failed", domain.ErrorDetail(err))
}

func TestClient_Upload_BareDocument(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"id": "9", "filename": "a.txt", "size": 1536, "word_count": 3}`)
	c := newClient(t, Config{BaseURL: srv.URL})

	doc, err := c.UploadDocument(context.Background(), "a.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "9", doc.ID)
	assert.Equal(t, "1.5 KB", domain.FormatFileSize(doc.Size))
	assert.Equal(t, "3", doc.WordCountLabel())
}

func TestClient_Upload_ReaderError(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, Config{BaseURL: ts.URL})

	_, err := c.UploadDocument(context.Background(), "a.txt", io.MultiReader(strings.NewReader("x"), errReader{}))
	require.Error(t, err)
	assert.Equal(t, 0, ts.backend.Calls().Upload)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk read failed") }

func TestClient_ErrorWithoutDetail(t *testing.T) {
	srv, _ := serve(t, http.StatusInternalServerError, `<html>oops</html>`)
	c := newClient(t, Config{BaseURL: srv.URL})

	_, err := c.ListDocuments(context.Background())
	require.Error(t, err)
	assert.Equal(t, "server returned 500 Internal Server Error", err.Error())
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()
	c := newClient(t, Config{BaseURL: base})

	_, err := c.ListDocuments(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestClient_BearerToken(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, Config{BaseURL: ts.URL, Token: "s3cret"})

	_, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	headers := ts.requestHeaders()
	require.Len(t, headers, 1)
	assert.Equal(t, "Bearer s3cret", headers[0].Get("Authorization"))
}

func TestClient_NoTokenNoAuthorization(t *testing.T) {
	ts := newTestServer(t)
	c := newClient(t, Config{BaseURL: ts.URL})

	_, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	headers := ts.requestHeaders()
	require.Len(t, headers, 1)
	assert.Empty(t, headers[0].Get("Authorization"))
}

func TestClient_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-block
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })
	c := newClient(t, Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	_, err := c.ListDocuments(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRetryAfter, "1")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"detail": "slow down"}`)
	}))
	t.Cleanup(srv.Close)
	c := newClient(t, Config{BaseURL: srv.URL})

	_, err := c.ListDocuments(context.Background())
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "1", rlErr.RetryAfter)
	assert.Equal(t, "slow down", domain.ErrorDetail(err))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.ListDocuments(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
