package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors represent validation failures caught before any request.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a search was requested with a blank term.
	ErrEmptyQuery = fmt.Errorf("%w: search query is empty", ErrInvalidInput)

	// ErrEmptyMessage indicates a chat message was blank.
	ErrEmptyMessage = fmt.Errorf("%w: chat message is empty", ErrInvalidInput)

	// ErrNoFile indicates an upload was requested without a file.
	ErrNoFile = fmt.Errorf("%w: no file selected", ErrInvalidInput)

	// ErrNotFound indicates the server has no such document.
	ErrNotFound = errors.New("not found")

	// ErrDeleteDeclined indicates the user did not confirm a deletion.
	ErrDeleteDeclined = errors.New("deletion not confirmed")
)

// APIError is a non-2xx response from the document server.
// Detail carries the server's own message and is shown verbatim.
type APIError struct {
	// StatusCode is the HTTP status returned.
	StatusCode int

	// Detail is the server-supplied "detail" field.
	Detail string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// ErrorDetail returns the text a user should see for err.
// Server errors surface their detail verbatim; anything else uses Error().
func ErrorDetail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
