package documents

import "context"

// Repo defines persistence operations for documents. Listing order is the
// store-assigned creation order.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, documentID string) (Document, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	ListAll(ctx context.Context) ([]Document, error)
	ListByIDs(ctx context.Context, ids []string) ([]Document, error)
}
