package corpus

import "time"

// Document is a corpus passage as stored: the text, where it came from, and
// when it was ingested. SourceID is an opaque provenance identifier (the
// originating URL or filename) surfaced to users for citation.
type Document struct {
	ID        string
	Content   string
	SourceID  string
	CreatedAt time.Time
}

// Match is a single similarity-search result.
type Match struct {
	Document   Document
	Similarity float64 // cosine similarity, higher is closer
}
