package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// maxBodySize bounds how much of any response is read.
const maxBodySize = 8 << 20

// Config holds configuration for the HTTP client.
type Config struct {
	// BaseURL is the server root; "/api/..." paths are appended.
	BaseURL string

	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration

	// Token, when set, is sent as a bearer token.
	Token string

	// RateLimit caps requests per second. Zero disables throttling.
	RateLimit float64

	// DocumentsShape selects how the document list is decoded.
	DocumentsShape domain.ResponseShape

	// HTTPClient is the base client. Defaults to a new http.Client.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a Config from client settings.
func ConfigFromSettings(s *domain.Settings) Config {
	return Config{
		BaseURL:        s.Server.URL,
		Timeout:        s.Server.Timeout,
		Token:          s.Server.Token,
		RateLimit:      s.Server.RateLimit,
		DocumentsShape: s.API.DocumentsShape,
	}
}

// Client talks to the document server.
type Client struct {
	client  *http.Client
	baseURL string
	shape   domain.ResponseShape
	limiter *rateLimiter
}

// New creates a client for cfg.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	shape := cfg.DocumentsShape
	if shape == "" {
		shape = domain.ShapeAuto
	}
	if !shape.IsValid() {
		return nil, fmt.Errorf("%w: documents shape %q", domain.ErrInvalidInput, shape)
	}

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		httpClient = &clone
	}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, src)
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		client:  httpClient,
		baseURL: base,
		shape:   shape,
		limiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// BaseURL returns the server root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListDocuments returns every document on the server.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	body, _, err := c.do(ctx, http.MethodGet, "/api/documents", nil, "")
	if err != nil {
		return nil, err
	}
	return decodeDocuments(body, c.shape)
}

// UploadDocument streams content to the server as multipart field "file".
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (*domain.Document, error) {
	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err == nil {
			_, err = io.Copy(part, content)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	body, status, err := c.do(ctx, http.MethodPost, "/api/upload", pr, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return decodeUpload(body, status)
}

// DeleteDocument deletes a document by ID. Any 2xx body, including an
// empty one, is success.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	_, _, err := c.do(ctx, http.MethodDelete, "/api/documents/"+url.PathEscape(id), nil, "")
	return err
}

// Search runs a keyword search.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResults, error) {
	reqBody, err := json.Marshal(searchRequest{Query: query.Query, MaxResults: query.MaxResults})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	body, _, err := c.do(ctx, http.MethodPost, "/api/search", bytes.NewReader(reqBody), "application/json")
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return resp.toDomain(query.Query), nil
}

// Chat sends one message and returns the server's answer.
func (c *Client) Chat(ctx context.Context, message string) (*domain.ChatReply, error) {
	reqBody, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	body, _, err := c.do(ctx, http.MethodPost, "/api/chat", bytes.NewReader(reqBody), "application/json")
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return resp.toDomain()
}

// do sends a request and returns the body of a 2xx response.
// Non-2xx responses are returned as *domain.APIError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("wait for rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debug("%s %s failed: %v", method, path, err)
		return nil, 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	c.limiter.Observe(resp)
	logger.Debug("%s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := apiError(resp.StatusCode, data)
		if isRateLimited(resp.StatusCode) {
			return nil, resp.StatusCode, &RateLimitError{APIError: apiErr, RetryAfter: resp.Header.Get(HeaderRetryAfter)}
		}
		return nil, resp.StatusCode, apiErr
	}
	return data, resp.StatusCode, nil
}
