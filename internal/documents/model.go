package documents

import "time"

// Document represents an uploaded document owned by a user, together with
// its extracted content and classification.
type Document struct {
	ID               string
	UserID           string
	Title            string
	FileName         string // name of the original upload
	StorageKey       string
	URL              string // signed download URL issued at ingestion
	Content          string // full extracted text
	SizeBytes        int64
	UploadedAt       time.Time
	Classification   string
	ClassificationMs float64
}
