package documents

import "context"

// Repo defines persistence operations for documents. Every method is scoped
// by the owning user; a document is never visible to another user.
type Repo interface {
	Insert(ctx context.Context, doc Document) error
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	// SearchByUser returns the user's documents whose content contains the
	// query as a case-insensitive substring.
	SearchByUser(ctx context.Context, userID, query string) ([]Document, error)
	GetByID(ctx context.Context, userID, id string) (Document, error)
	// Replace overwrites the full record identified by doc.ID and doc.UserID.
	Replace(ctx context.Context, doc Document) error
	Delete(ctx context.Context, userID, id string) error
}
