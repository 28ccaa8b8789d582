package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"docanalytics-backend/internal/classify"
	"docanalytics-backend/internal/extract"
	"docanalytics-backend/internal/search"
	"docanalytics-backend/internal/shared/metrics"
	"docanalytics-backend/internal/shared/storage/object"
	"docanalytics-backend/internal/shared/telemetry"
)

// Service orchestrates upload, search, update and delete flows: it validates
// incoming files, stores bytes in the object store, extracts and classifies
// text, and persists document records.
type Service struct {
	Store      object.ObjectStore
	Repo       Repo
	Classifier *classify.Classifier
}

// Stats summarizes a retrieval for the dashboard views.
type Stats struct {
	TotalDocuments        int
	TotalSizeMB           float64
	ElapsedMs             float64
	TotalClassificationMs float64
}

// CategoryGroup holds one classification label and its documents.
type CategoryGroup struct {
	Label     string
	Documents []Document
}

// Upload validates and ingests a new file for a user. Validation failures
// happen before any I/O; a blob stored before a later failure is removed
// best-effort so no partial record is ever committed.
func (s *Service) Upload(ctx context.Context, userID, fileName string, size int64, r io.Reader) (Document, error) {
	if userID == "" {
		return Document{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if err := validateFile(fileName, size); err != nil {
		return Document{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Document{}, ErrEmptyFile
	}

	doc, err := s.ingest(ctx, userID, uuid.NewString(), fileName, data)
	if err != nil {
		return Document{}, err
	}

	if err := s.Repo.Insert(ctx, doc); err != nil {
		s.discardBlob(ctx, doc.StorageKey, "upload.insert_failed")
		return Document{}, fmt.Errorf("persist document: %w", err)
	}

	metrics.IncDocumentUploaded()
	telemetry.Info("document.uploaded", map[string]any{
		"document_id":    doc.ID,
		"user_id":        userID,
		"file_name":      doc.FileName,
		"size_bytes":     doc.SizeBytes,
		"classification": doc.Classification,
	})
	return doc, nil
}

// Update replaces an existing document with a new file. The new blob is
// stored before the record is swapped and the old blob is only deleted after
// the swap succeeds, so a failed update never loses the previous file.
func (s *Service) Update(ctx context.Context, userID, id, fileName string, size int64, r io.Reader) (Document, error) {
	if err := validateFile(fileName, size); err != nil {
		return Document{}, err
	}

	existing, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return Document{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Document{}, ErrEmptyFile
	}

	doc, err := s.ingest(ctx, userID, existing.ID, fileName, data)
	if err != nil {
		return Document{}, err
	}

	if err := s.Repo.Replace(ctx, doc); err != nil {
		s.discardBlob(ctx, doc.StorageKey, "update.replace_failed")
		return Document{}, fmt.Errorf("replace document: %w", err)
	}

	if existing.StorageKey != "" && existing.StorageKey != doc.StorageKey {
		s.discardBlob(ctx, existing.StorageKey, "update.old_blob")
	}

	metrics.IncDocumentUpdated()
	telemetry.Info("document.updated", map[string]any{
		"document_id":    doc.ID,
		"user_id":        userID,
		"classification": doc.Classification,
	})
	return doc, nil
}

// Delete removes a document's blob (best-effort) and its record.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	doc, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if doc.StorageKey != "" {
		s.discardBlob(ctx, doc.StorageKey, "delete.blob")
	}

	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	metrics.IncDocumentDeleted()
	telemetry.Info("document.deleted", map[string]any{
		"document_id": id,
		"user_id":     userID,
	})
	return nil
}

// Search returns the user's documents matching query with occurrences
// highlighted, along with dashboard stats. A blank query returns everything
// unfiltered and unhighlighted.
func (s *Service) Search(ctx context.Context, userID, query string) ([]Document, Stats, error) {
	start := time.Now()

	q := strings.TrimSpace(query)
	var (
		docs []Document
		err  error
	)
	if q == "" {
		docs, err = s.Repo.ListByUser(ctx, userID)
	} else {
		metrics.IncSearch()
		docs, err = s.Repo.SearchByUser(ctx, userID, q)
	}
	if err != nil {
		return nil, Stats{}, fmt.Errorf("search documents: %w", err)
	}

	if q != "" {
		// Highlighting is presentation-only and operates on the copies
		// returned by the repo, never on stored content.
		for i := range docs {
			docs[i].Content = search.Highlight(docs[i].Content, q)
		}
	}

	stats := statsFor(docs)
	stats.ElapsedMs = elapsedMs(start)
	return docs, stats, nil
}

// Sorted returns all of the user's documents ordered A-Z by title.
func (s *Service) Sorted(ctx context.Context, userID string) ([]Document, Stats, error) {
	start := time.Now()

	docs, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("list documents: %w", err)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Title < docs[j].Title
	})

	stats := statsFor(docs)
	stats.ElapsedMs = elapsedMs(start)
	return docs, stats, nil
}

// Classified groups the user's documents by classification label, keys
// sorted ascending, and sums the observed per-document classification time.
func (s *Service) Classified(ctx context.Context, userID string) ([]CategoryGroup, Stats, error) {
	docs, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("list documents: %w", err)
	}

	byLabel := make(map[string][]Document)
	totalMs := 0.0
	for _, doc := range docs {
		label := doc.Classification
		if label == "" {
			label = classify.Unclassified
		}
		byLabel[label] = append(byLabel[label], doc)
		totalMs += doc.ClassificationMs
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	groups := make([]CategoryGroup, 0, len(labels))
	for _, label := range labels {
		groups = append(groups, CategoryGroup{Label: label, Documents: byLabel[label]})
	}

	stats := statsFor(docs)
	stats.TotalClassificationMs = round2(totalMs)
	return groups, stats, nil
}

// DownloadURL issues a fresh signed URL for the document's stored blob.
func (s *Service) DownloadURL(ctx context.Context, userID, id string) (string, error) {
	doc, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return "", err
	}
	url, err := s.Store.SignedURL(ctx, doc.StorageKey, doc.FileName)
	if err != nil {
		return "", fmt.Errorf("sign download url: %w", err)
	}
	return url, nil
}

// ingest stores the blob and derives all document fields. The record is not
// persisted; callers insert or replace it and own compensation on failure.
func (s *Service) ingest(ctx context.Context, userID, id, fileName string, data []byte) (Document, error) {
	objectName := uuid.NewString() + strings.ToLower(filepath.Ext(fileName))

	storageKey, size, err := s.Store.Save(ctx, userID, objectName, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("store file: %w", err)
	}

	url, err := s.Store.SignedURL(ctx, storageKey, fileName)
	if err != nil {
		s.discardBlob(ctx, storageKey, "ingest.sign_failed")
		return Document{}, fmt.Errorf("sign url: %w", err)
	}

	content, err := extract.FullText(data, fileName)
	if err != nil {
		s.discardBlob(ctx, storageKey, "ingest.extract_failed")
		return Document{}, fmt.Errorf("extract text: %w", err)
	}
	title := extract.Title(data, fileName)

	label, elapsed := s.Classifier.ClassifyTimed(content)
	metrics.ObserveClassificationMs(elapsed)

	return Document{
		ID:               id,
		UserID:           userID,
		Title:            title,
		FileName:         fileName,
		StorageKey:       storageKey,
		URL:              url,
		Content:          content,
		SizeBytes:        size,
		UploadedAt:       time.Now().UTC(),
		Classification:   label,
		ClassificationMs: elapsed,
	}, nil
}

// discardBlob deletes a stored object, logging instead of failing: blob
// cleanup is always best-effort and never masks the primary error.
func (s *Service) discardBlob(ctx context.Context, storageKey, reason string) {
	if err := s.Store.Delete(ctx, storageKey); err != nil {
		telemetry.Error("storage.orphaned_blob", map[string]any{
			"storage_key": storageKey,
			"reason":      reason,
			"error":       err.Error(),
		})
	}
}

func validateFile(fileName string, size int64) error {
	if size == 0 {
		return ErrEmptyFile
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf", ".docx":
		return nil
	default:
		return ErrUnsupportedFormat
	}
}

func statsFor(docs []Document) Stats {
	var sizeBytes int64
	for _, doc := range docs {
		sizeBytes += doc.SizeBytes
	}
	return Stats{
		TotalDocuments: len(docs),
		TotalSizeMB:    round2(float64(sizeBytes) / 1024.0 / 1024.0),
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
