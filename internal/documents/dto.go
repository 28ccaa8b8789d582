package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
// Content carries highlighted text on search responses; it is derived per
// request and never written back.
type DocumentResponse struct {
	DocumentID       string    `json:"documentId"`
	Title            string    `json:"title"`
	FileName         string    `json:"fileName"`
	URL              string    `json:"url"`
	Content          string    `json:"content,omitempty"`
	SizeBytes        int64     `json:"sizeBytes"`
	UploadedAt       time.Time `json:"uploadedAt"`
	Classification   string    `json:"classification"`
	ClassificationMs float64   `json:"classificationMs"`
}

// StatsResponse carries dashboard aggregates alongside a result set.
type StatsResponse struct {
	TotalDocuments        int     `json:"totalDocuments"`
	TotalSizeMB           float64 `json:"totalSizeMb"`
	ElapsedMs             float64 `json:"elapsedMs"`
	TotalClassificationMs float64 `json:"totalClassificationMs,omitempty"`
}

// GroupResponse is one classification bucket in the classified view.
type GroupResponse struct {
	Label     string             `json:"label"`
	Documents []DocumentResponse `json:"documents"`
}

func toResponse(doc Document, includeContent bool) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:       doc.ID,
		Title:            doc.Title,
		FileName:         doc.FileName,
		URL:              doc.URL,
		SizeBytes:        doc.SizeBytes,
		UploadedAt:       doc.UploadedAt,
		Classification:   doc.Classification,
		ClassificationMs: doc.ClassificationMs,
	}
	if includeContent {
		resp.Content = doc.Content
	}
	return resp
}

func toResponses(docs []Document, includeContent bool) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc, includeContent))
	}
	return out
}

func toStatsResponse(stats Stats) StatsResponse {
	return StatsResponse{
		TotalDocuments:        stats.TotalDocuments,
		TotalSizeMB:           stats.TotalSizeMB,
		ElapsedMs:             stats.ElapsedMs,
		TotalClassificationMs: stats.TotalClassificationMs,
	}
}
