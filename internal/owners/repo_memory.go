package owners

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. The mutex serializes the
// read-modify-write of the document list, matching the per-owner atomicity the
// SQL store gets from its single-statement append.
type MemoryRepo struct {
	mu     sync.RWMutex
	owners map[string]Owner
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{owners: make(map[string]Owner)}
}

func (r *MemoryRepo) Create(ctx context.Context, owner Owner) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner.DocumentIDs == nil {
		owner.DocumentIDs = []string{}
	}
	r.owners[owner.ID] = owner
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, ownerID string) (Owner, error) {
	if err := ctx.Err(); err != nil {
		return Owner{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner, ok := r.owners[ownerID]
	if !ok {
		return Owner{}, ErrNotFound
	}
	ids := make([]string, len(owner.DocumentIDs))
	copy(ids, owner.DocumentIDs)
	owner.DocumentIDs = ids
	return owner, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[ownerID]; !ok {
		return ErrNotFound
	}
	delete(r.owners, ownerID)
	return nil
}

func (r *MemoryRepo) AppendDocumentID(ctx context.Context, ownerID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	owner, ok := r.owners[ownerID]
	if !ok {
		return ErrNotFound
	}
	owner.DocumentIDs = append(owner.DocumentIDs, documentID)
	r.owners[ownerID] = owner
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
