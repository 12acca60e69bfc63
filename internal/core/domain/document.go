package domain

import (
	"strconv"
	"time"
)

// Document is a file stored and processed by the document server.
// The client never creates documents itself; it holds a refreshable,
// read-only copy of what the server reports.
type Document struct {
	// ID is the server-assigned identifier.
	ID string `json:"id"`

	// Filename is the original name of the uploaded file.
	Filename string `json:"filename"`

	// Size is the stored file size in bytes.
	Size int64 `json:"size"`

	// UploadTime is when the server processed the upload.
	// Zero when the server sent no parseable timestamp.
	UploadTime time.Time `json:"upload_time"`

	// WordCount is the number of words extracted, when reported.
	WordCount *int `json:"word_count,omitempty"`

	// FileType is the extension the server detected, dot included (".pdf", ".txt").
	FileType string `json:"file_type,omitempty"`
}

// WordCountLabel returns the word count for display, or "N/A" when unknown.
func (d *Document) WordCountLabel() string {
	if d.WordCount == nil {
		return "N/A"
	}
	return strconv.Itoa(*d.WordCount)
}

// FindDocument returns the document with the given ID from docs.
func FindDocument(docs []Document, id string) (*Document, bool) {
	for i := range docs {
		if docs[i].ID == id {
			return &docs[i], true
		}
	}
	return nil, false
}
