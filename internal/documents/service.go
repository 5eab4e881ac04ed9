package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"docvault-backend/internal/inspect"
	"docvault-backend/internal/owners"
	"docvault-backend/internal/shared/metrics"
	"docvault-backend/internal/shared/storage/object"
	"docvault-backend/internal/shared/telemetry"
	"docvault-backend/internal/shared/util"
)

const (
	// AllowedContentType is the single accepted upload media type.
	AllowedContentType = "application/pdf"

	defaultMaxUploadBytes = 5 << 20
	defaultPageSize       = 10
)

// Upload describes an incoming payload before validation.
type Upload struct {
	OriginalName string
	ContentType  string
	DeclaredSize int64
	Body         io.Reader
}

// Page is one window over an owner's documents.
type Page struct {
	Documents   []Document
	Total       int
	CurrentPage int
	TotalPages  int
}

// Service contains the ingestion pipeline and the read paths for documents.
type Service struct {
	Store          object.Store
	Repo           Repo
	Owners         owners.Repo
	MaxUploadBytes int64
}

func (s *Service) maxBytes() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}

// Ingest runs the full pipeline: validate, stage, inspect, then link the new
// record to its owner. The document insert is the durability point; a failure
// of the owner-list append afterwards surfaces as ErrPartialLink and is never
// rolled back here.
func (s *Service) Ingest(ctx context.Context, ownerID string, up Upload) (doc Document, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveIngestDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
		switch {
		case err == nil:
			metrics.IncIngestAccepted()
		case errors.Is(err, ErrPartialLink):
			metrics.IncIngestPartialLink()
		default:
			metrics.IncIngestRejected()
		}
	}()

	if strings.TrimSpace(ownerID) == "" {
		return Document{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if mediaType(up.ContentType) != AllowedContentType {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, up.ContentType)
	}
	if up.DeclaredSize > s.maxBytes() {
		return Document{}, fmt.Errorf("%w: %d bytes exceeds limit %d", ErrPayloadTooLarge, up.DeclaredSize, s.maxBytes())
	}

	sanitized, err := util.SanitizeFileName(up.OriginalName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Timestamp prefix keeps concurrent uploads of the same original name
	// from colliding in the staging area.
	storedName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitized)

	size, err := s.stage(ctx, storedName, up.Body)
	if err != nil {
		return Document{}, err
	}

	pages, err := s.inspect(ctx, storedName)
	if err != nil {
		// Staged bytes for an unparseable payload are orphaned; cleanup is a
		// separate concern, the record layer must simply never reference them.
		return Document{}, err
	}

	if _, err := s.Owners.GetByID(ctx, ownerID); err != nil {
		return Document{}, err
	}

	doc = Document{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		StoredName:   storedName,
		OriginalName: up.OriginalName,
		ContentType:  AllowedContentType,
		SizeBytes:    size,
		PageCount:    &pages,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("create document record: %w", err)
	}

	if err := s.Owners.AppendDocumentID(ctx, ownerID, doc.ID); err != nil {
		telemetry.Error("ingest.partial_link", map[string]any{
			"document_id": doc.ID,
			"owner_id":    ownerID,
			"err":         err.Error(),
		})
		return Document{}, fmt.Errorf("%w: document %s, owner %s: %v", ErrPartialLink, doc.ID, ownerID, err)
	}

	return doc, nil
}

// stage writes the payload to the staging area, enforcing the size ceiling
// mid-transfer. Rejected or failed streams leave no staged payload behind.
func (s *Service) stage(ctx context.Context, storedName string, body io.Reader) (int64, error) {
	limit := s.maxBytes()
	size, err := s.Store.Save(ctx, storedName, io.LimitReader(body, limit+1))
	if err != nil {
		return 0, fmt.Errorf("stage payload: %w", err)
	}
	if size > limit {
		if rmErr := s.Store.Remove(ctx, storedName); rmErr != nil {
			telemetry.Error("ingest.discard_failed", map[string]any{
				"stored_name": storedName,
				"err":         rmErr.Error(),
			})
		}
		return 0, fmt.Errorf("%w: stream exceeds limit %d", ErrPayloadTooLarge, limit)
	}
	return size, nil
}

func (s *Service) inspect(ctx context.Context, storedName string) (int, error) {
	rc, err := s.Store.Open(ctx, storedName)
	if err != nil {
		return 0, fmt.Errorf("open staged payload: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return 0, fmt.Errorf("read staged payload: %w", err)
	}

	pages, err := inspect.PageCount(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	return pages, nil
}

// GetByID resolves a single document and denormalizes its owner's name.
// A missing owner (deleted after ingestion) is not an error on this path;
// the name is simply left empty.
func (s *Service) GetByID(ctx context.Context, documentID string) (Document, string, error) {
	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil {
		return Document{}, "", err
	}

	ownerName := ""
	owner, err := s.Owners.GetByID(ctx, doc.OwnerID)
	switch {
	case err == nil:
		ownerName = owner.Name
	case errors.Is(err, owners.ErrNotFound):
		// orphaned reference, tolerated
	default:
		return Document{}, "", err
	}
	return doc, ownerName, nil
}

// ListByOwner returns one page of an owner's documents in creation order.
// A nonexistent owner yields an empty zero-total page, not an error. The
// count and window are two separate reads; a write between them can skew the
// totals, which the backing store cannot prevent without a cross-statement
// transaction.
func (s *Service) ListByOwner(ctx context.Context, ownerID string, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	total, err := s.Repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return Page{}, err
	}

	docs, err := s.Repo.ListByOwner(ctx, ownerID, limit, (page-1)*limit)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Documents:   docs,
		Total:       total,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

// ListAll returns every document unfiltered, in creation order.
func (s *Service) ListAll(ctx context.Context) ([]Document, error) {
	return s.Repo.ListAll(ctx)
}

// OpenContent opens the staged bytes of an already-resolved document.
func (s *Service) OpenContent(ctx context.Context, doc Document) (io.ReadCloser, error) {
	return s.Store.Open(ctx, doc.StoredName)
}

func mediaType(contentType string) string {
	ct := strings.TrimSpace(contentType)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
