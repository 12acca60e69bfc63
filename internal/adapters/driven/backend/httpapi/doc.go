// Package httpapi implements driven.Backend against the document server's
// JSON-over-HTTP API.
//
// Endpoints, relative to the configured base URL:
//
//	GET    /api/documents        list documents
//	POST   /api/upload           multipart upload, field "file"
//	DELETE /api/documents/{id}   delete one document
//	POST   /api/search           {"query", "max_results"}
//	POST   /api/chat             {"message"}
//
// Responses are decoded leniently: older servers report "total" instead of
// "total_results", "matches" instead of "content_snippet" and "answer"
// instead of "response". Non-2xx responses become *domain.APIError with the
// server's "detail" text.
package httpapi
