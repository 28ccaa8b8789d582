package documents

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, user_id, title, file_name, storage_key, url, content, size_bytes, uploaded_at, classification, classification_ms`

// Insert inserts a new document.
func (r *PGRepo) Insert(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    user_id,
    title,
    file_name,
    storage_key,
    url,
    content,
    size_bytes,
    uploaded_at,
    classification,
    classification_ms
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	classification := doc.Classification
	if classification == "" {
		classification = "Unclassified"
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.FileName,
		doc.StorageKey,
		doc.URL,
		doc.Content,
		doc.SizeBytes,
		doc.UploadedAt,
		classification,
		doc.ClassificationMs,
	)
	return err
}

// ListByUser returns all documents owned by a user, oldest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1
ORDER BY uploaded_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// SearchByUser returns the user's documents whose content contains query,
// case-insensitively. The query is escaped so LIKE wildcards match literally.
func (r *PGRepo) SearchByUser(ctx context.Context, userID, query string) ([]Document, error) {
	const q = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1 AND content ILIKE '%' || $2 || '%' ESCAPE '\'
ORDER BY uploaded_at ASC`

	rows, err := r.DB.QueryContext(ctx, q, userID, escapeLike(query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`

	var doc Document
	err := r.DB.QueryRowContext(ctx, query, userID, id).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&doc.FileName,
		&doc.StorageKey,
		&doc.URL,
		&doc.Content,
		&doc.SizeBytes,
		&doc.UploadedAt,
		&doc.Classification,
		&doc.ClassificationMs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// Replace overwrites the full record identified by doc.ID and doc.UserID.
func (r *PGRepo) Replace(ctx context.Context, doc Document) error {
	const query = `
UPDATE documents
SET title = $3,
    file_name = $4,
    storage_key = $5,
    url = $6,
    content = $7,
    size_bytes = $8,
    uploaded_at = $9,
    classification = $10,
    classification_ms = $11
WHERE user_id = $1 AND id = $2`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		doc.UserID,
		doc.ID,
		doc.Title,
		doc.FileName,
		doc.StorageKey,
		doc.URL,
		doc.Content,
		doc.SizeBytes,
		doc.UploadedAt,
		doc.Classification,
		doc.ClassificationMs,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document by ID for a user.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM documents WHERE user_id = $1 AND id = $2`

	res, err := r.DB.ExecContext(ctx, query, userID, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDocuments(rows *sql.Rows) ([]Document, error) {
	out := []Document{}
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.Title,
			&doc.FileName,
			&doc.StorageKey,
			&doc.URL,
			&doc.Content,
			&doc.SizeBytes,
			&doc.UploadedAt,
			&doc.Classification,
			&doc.ClassificationMs,
		); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// escapeLike escapes LIKE/ILIKE metacharacters so the query is treated as a
// literal substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

var _ Repo = (*PGRepo)(nil)
