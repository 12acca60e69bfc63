package domain

// DefaultMaxResults is the fixed page size requested from the search endpoint.
const DefaultMaxResults = 10

// SearchQuery is a keyword search request.
type SearchQuery struct {
	// Query is the trimmed search term.
	Query string `json:"query"`

	// MaxResults caps the number of hits returned.
	MaxResults int `json:"max_results"`
}

// SearchHit is a single matching document with a preview of the match.
type SearchHit struct {
	// DocumentID identifies the matched document, when the server reports it.
	DocumentID string `json:"id,omitempty"`

	// Filename is the matched document's name.
	Filename string `json:"filename"`

	// ContentSnippet is a short excerpt around the match.
	ContentSnippet string `json:"content_snippet"`
}

// SearchResults is the ranked outcome of one search. It is never cached.
type SearchResults struct {
	// Query echoes the term the server searched for.
	Query string `json:"query"`

	// TotalResults is the number of matches the server found.
	TotalResults int `json:"total_results"`

	// Hits are the matches in rank order.
	Hits []SearchHit `json:"results"`
}

// Empty reports whether the search found nothing.
func (r *SearchResults) Empty() bool {
	return r == nil || r.TotalResults == 0
}
