package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func documentRows(docs ...Document) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "file_name", "storage_key", "url",
		"content", "size_bytes", "uploaded_at", "classification", "classification_ms",
	})
	for _, doc := range docs {
		rows.AddRow(
			doc.ID, doc.UserID, doc.Title, doc.FileName, doc.StorageKey, doc.URL,
			doc.Content, doc.SizeBytes, doc.UploadedAt, doc.Classification, doc.ClassificationMs,
		)
	}
	return rows
}

func TestPGRepoInsertDefaultsClassification(t *testing.T) {
	repo, mock := newMockRepo(t)

	doc := Document{
		ID:         "doc-1",
		UserID:     "user-1",
		Title:      "Untitled PDF",
		FileName:   "scan.pdf",
		StorageKey: "user-1/abc.pdf",
		URL:        "https://files.example/user-1/abc.pdf",
		Content:    "scanned text",
		SizeBytes:  2048,
		UploadedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.UserID,
			doc.Title,
			doc.FileName,
			doc.StorageKey,
			doc.URL,
			doc.Content,
			doc.SizeBytes,
			doc.UploadedAt,
			"Unclassified",
			doc.ClassificationMs,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Insert(context.Background(), doc); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM documents").
		WithArgs("user-1", "doc-missing").
		WillReturnRows(documentRows())

	_, err := repo.GetByID(context.Background(), "user-1", "doc-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoSearchEscapesLikeWildcards(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM documents").
		WithArgs("user-1", `50\% off\_deal`).
		WillReturnRows(documentRows(Document{
			ID: "doc-1", UserID: "user-1", Title: "Promo",
			UploadedAt: time.Now().UTC(), Classification: "Unclassified",
		}))

	docs, err := repo.SearchByUser(context.Background(), "user-1", "50% off_deal")
	if err != nil {
		t.Fatalf("SearchByUser: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc-1" {
		t.Fatalf("unexpected result: %+v", docs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoReplaceUnknownIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Replace(context.Background(), Document{ID: "doc-x", UserID: "user-1"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteUnknownIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("user-1", "doc-x").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "user-1", "doc-x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListScopedByUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery("FROM documents").
		WithArgs("user-1").
		WillReturnRows(documentRows(
			Document{ID: "doc-1", UserID: "user-1", Title: "First", UploadedAt: now, Classification: "Unclassified"},
			Document{ID: "doc-2", UserID: "user-1", Title: "Second", UploadedAt: now, Classification: "Unclassified"},
		))

	docs, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
