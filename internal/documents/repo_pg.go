package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres. The seq column carries the
// store-assigned creation order used for stable pagination.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, owner_id, stored_name, original_name, content_type, size_bytes, page_count, created_at`

func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, owner_id, stored_name, original_name, content_type, size_bytes, page_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var pageCount sql.NullInt64
	if doc.PageCount != nil {
		pageCount = sql.NullInt64{Int64: int64(*doc.PageCount), Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.OwnerID,
		doc.StoredName,
		doc.OriginalName,
		doc.ContentType,
		doc.SizeBytes,
		pageCount,
		doc.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1
LIMIT 1`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Document, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE owner_id = $1
ORDER BY seq ASC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

func (r *PGRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	const query = `SELECT COUNT(*) FROM documents WHERE owner_id = $1`

	var count int
	if err := r.DB.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGRepo) ListAll(ctx context.Context) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
ORDER BY seq ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

func (r *PGRepo) ListByIDs(ctx context.Context, ids []string) ([]Document, error) {
	if len(ids) == 0 {
		return []Document{}, nil
	}
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = ANY($1)
ORDER BY seq ASC`

	rows, err := r.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var pageCount sql.NullInt64
	if err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.StoredName,
		&doc.OriginalName,
		&doc.ContentType,
		&doc.SizeBytes,
		&pageCount,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	if pageCount.Valid {
		pages := int(pageCount.Int64)
		doc.PageCount = &pages
	}
	return doc, nil
}

func collectDocuments(rows *sql.Rows) ([]Document, error) {
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
