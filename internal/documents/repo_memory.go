package documents

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. Documents are held in
// insertion order, which stands in for the store-assigned creation order.
type MemoryRepo struct {
	mu    sync.RWMutex
	docs  []Document
	index map[string]int // id -> position in docs
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{index: make(map[string]int)}
}

func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index[doc.ID] = len(r.docs)
	r.docs = append(r.docs, doc)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[documentID]
	if !ok {
		return Document{}, ErrNotFound
	}
	return r.docs[pos], nil
}

func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Document{}
	skipped := 0
	for _, doc := range r.docs {
		if doc.OwnerID != ownerID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *MemoryRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, doc := range r.docs {
		if doc.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepo) ListAll(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Document, len(r.docs))
	copy(out, r.docs)
	return out, nil
}

func (r *MemoryRepo) ListByIDs(ctx context.Context, ids []string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Document{}
	for _, id := range ids {
		if pos, ok := r.index[id]; ok {
			out = append(out, r.docs[pos])
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
