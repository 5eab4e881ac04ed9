package owners

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "owner not found" }

// Repo defines persistence operations for owners.
type Repo interface {
	Create(ctx context.Context, owner Owner) error
	GetByID(ctx context.Context, ownerID string) (Owner, error)
	Delete(ctx context.Context, ownerID string) error
	// AppendDocumentID atomically appends documentID to the owner's document
	// list. Returns ErrNotFound if the owner no longer exists.
	AppendDocumentID(ctx context.Context, ownerID, documentID string) error
}
