package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidName = errors.New("owner name is required")

// DocumentRecord is the denormalized view of a document resolved for an owner.
type DocumentRecord struct {
	ID           string
	StoredName   string
	OriginalName string
	ContentType  string
	SizeBytes    int64
	PageCount    *int
	CreatedAt    time.Time
}

// DocumentSource resolves document records by id for the owner-with-documents
// read path. Implemented by an adapter over the documents repository.
type DocumentSource interface {
	ListByIDs(ctx context.Context, ids []string) ([]DocumentRecord, error)
}

// Service contains business logic for owners.
type Service struct {
	Repo Repo
	Docs DocumentSource
}

func NewService(repo Repo, docs DocumentSource) *Service {
	return &Service{Repo: repo, Docs: docs}
}

// Create registers a new owner with an empty document list.
func (s *Service) Create(ctx context.Context, name string) (Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Owner{}, ErrInvalidName
	}

	owner := Owner{
		ID:          uuid.NewString(),
		Name:        name,
		DocumentIDs: []string{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, owner); err != nil {
		return Owner{}, err
	}
	return owner, nil
}

// Get returns the owner record without resolving its documents.
func (s *Service) Get(ctx context.Context, ownerID string) (Owner, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Owner{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, ownerID)
}

// GetWithDocuments resolves the owner's full document list on read. The list
// is driven by the owner's document_ids reference, not by a reverse query, so
// it reflects exactly what the link step has committed.
func (s *Service) GetWithDocuments(ctx context.Context, ownerID string) (Owner, []DocumentRecord, error) {
	owner, err := s.Get(ctx, ownerID)
	if err != nil {
		return Owner{}, nil, err
	}

	if len(owner.DocumentIDs) == 0 || s.Docs == nil {
		return owner, []DocumentRecord{}, nil
	}

	docs, err := s.Docs.ListByIDs(ctx, owner.DocumentIDs)
	if err != nil {
		return Owner{}, nil, err
	}
	return owner, docs, nil
}

// Delete removes the owner record. Owned documents are not cascaded; they
// remain readable by id.
func (s *Service) Delete(ctx context.Context, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, ownerID)
}
