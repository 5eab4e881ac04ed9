package owners

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. The document list is kept as a JSONB
// array so the append is a single atomic statement.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, owner Owner) error {
	const query = `
INSERT INTO owners (id, name, document_ids, created_at)
VALUES ($1, $2, $3, $4)`

	ids := owner.DocumentIDs
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal document ids: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query, owner.ID, owner.Name, raw, owner.CreatedAt)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, ownerID string) (Owner, error) {
	const query = `
SELECT id, name, document_ids, created_at
FROM owners
WHERE id = $1
LIMIT 1`

	var owner Owner
	var raw []byte
	err := r.DB.QueryRowContext(ctx, query, ownerID).Scan(
		&owner.ID,
		&owner.Name,
		&raw,
		&owner.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Owner{}, ErrNotFound
		}
		return Owner{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &owner.DocumentIDs); err != nil {
			return Owner{}, fmt.Errorf("unmarshal document ids: %w", err)
		}
	}
	if owner.DocumentIDs == nil {
		owner.DocumentIDs = []string{}
	}
	return owner, nil
}

func (r *PGRepo) Delete(ctx context.Context, ownerID string) error {
	const query = `DELETE FROM owners WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, ownerID)
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

// AppendDocumentID uses a store-level atomic array append, so two concurrent
// ingestions against the same owner cannot lose each other's update.
func (r *PGRepo) AppendDocumentID(ctx context.Context, ownerID, documentID string) error {
	const query = `
UPDATE owners
SET document_ids = document_ids || to_jsonb($2::text)
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, ownerID, documentID)
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

var _ Repo = (*PGRepo)(nil)
