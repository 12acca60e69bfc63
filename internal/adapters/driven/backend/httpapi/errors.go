package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

// Errors returned by the client.
var (
	// ErrInvalidBaseURL indicates the configured server URL cannot be used.
	ErrInvalidBaseURL = errors.New("invalid server URL")

	// ErrUnexpectedShape indicates a response body did not match the
	// configured or any accepted shape.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// RateLimitError is returned when the server answers 429 and asks the
// client to back off.
type RateLimitError struct {
	*domain.APIError

	// RetryAfter is when the server will accept requests again.
	RetryAfter string
}

// Unwrap exposes the underlying API error.
func (e *RateLimitError) Unwrap() error {
	return e.APIError
}

// errorBody is the server's error envelope. Detail is either a string or,
// for request validation failures, a list of {"loc", "msg"} objects.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// apiError builds an APIError from a non-2xx response body.
func apiError(status int, body []byte) *domain.APIError {
	return &domain.APIError{StatusCode: status, Detail: parseDetail(body)}
}

// parseDetail extracts a human-readable detail from an error body.
// It returns "" when nothing usable is present.
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		text := strings.TrimSpace(string(body))
		if len(text) > 200 || strings.HasPrefix(text, "<") {
			return ""
		}
		return text
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			return s
		}
		var items []validationItem
		if err := json.Unmarshal(eb.Detail, &items); err == nil && len(items) > 0 {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if loc := joinLoc(item.Loc); loc != "" {
					msgs = append(msgs, loc+": "+item.Msg)
					continue
				}
				msgs = append(msgs, item.Msg)
			}
			return strings.Join(msgs, "; ")
		}
	}
	return eb.Message
}

func joinLoc(loc []any) string {
	parts := make([]string, 0, len(loc))
	for _, p := range loc {
		if s, ok := p.(string); ok && s == "body" {
			continue
		}
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

func isRateLimited(status int) bool {
	return status == http.StatusTooManyRequests
}
