package documents

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used in dev and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Document // userID -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Document),
	}
}

// Insert stores a new document for a user.
func (r *MemoryRepo) Insert(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.UserID] = append(r.data[doc.UserID], doc)
	return nil
}

// ListByUser returns all documents owned by a user in insertion order.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.data[userID]
	out := make([]Document, len(docs))
	copy(out, docs)
	return out, nil
}

// SearchByUser returns the user's documents whose content contains query,
// case-insensitively.
func (r *MemoryRepo) SearchByUser(ctx context.Context, userID, query string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Document{}
	for _, doc := range r.data[userID] {
		if strings.Contains(strings.ToLower(doc.Content), needle) {
			out = append(out, doc)
		}
	}
	return out, nil
}

// GetByID returns a document by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.data[userID] {
		if doc.ID == id {
			return doc, nil
		}
	}
	return Document{}, ErrNotFound
}

// Replace overwrites the record identified by doc.ID for doc.UserID.
func (r *MemoryRepo) Replace(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[doc.UserID]
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a document by ID for a user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := r.data[userID]
	for i := range docs {
		if docs[i].ID == id {
			r.data[userID] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

var _ Repo = (*MemoryRepo)(nil)
