package knowledge

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO knowledge_documents (
    id,
    name,
    title,
    content,
    size_bytes,
    checksum,
    source,
    storage_key,
    maturity_tier,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	source := doc.Source
	if source == "" {
		source = "upload"
	}

	var storageKey sql.NullString
	if doc.StorageKey != "" {
		storageKey = sql.NullString{String: doc.StorageKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Name,
		doc.Title,
		doc.Content,
		doc.SizeBytes,
		doc.Checksum,
		source,
		storageKey,
		doc.MaturityTier,
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `
SELECT id, name, title, content, size_bytes, checksum, source, storage_key, maturity_tier, created_at
FROM knowledge_documents
WHERE id = $1
LIMIT 1`
	return r.getOne(ctx, query, id)
}

// GetByChecksum fetches the document with the given content checksum.
func (r *PGRepo) GetByChecksum(ctx context.Context, checksum string) (Document, error) {
	const query = `
SELECT id, name, title, content, size_bytes, checksum, source, storage_key, maturity_tier, created_at
FROM knowledge_documents
WHERE checksum = $1
LIMIT 1`
	return r.getOne(ctx, query, checksum)
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg any) (Document, error) {
	var doc Document
	var storageKey sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&doc.ID,
		&doc.Name,
		&doc.Title,
		&doc.Content,
		&doc.SizeBytes,
		&doc.Checksum,
		&doc.Source,
		&storageKey,
		&doc.MaturityTier,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	if storageKey.Valid {
		doc.StorageKey = storageKey.String
	}
	return doc, nil
}

// List returns all documents in ingest order.
func (r *PGRepo) List(ctx context.Context) ([]Document, error) {
	const query = `
SELECT id, name, title, content, size_bytes, checksum, source, storage_key, maturity_tier, created_at
FROM knowledge_documents
ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var storageKey sql.NullString
		if err := rows.Scan(
			&doc.ID,
			&doc.Name,
			&doc.Title,
			&doc.Content,
			&doc.SizeBytes,
			&doc.Checksum,
			&doc.Source,
			&storageKey,
			&doc.MaturityTier,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		if storageKey.Valid {
			doc.StorageKey = storageKey.String
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// SetMaturityTier overrides the maturity tier for a document.
func (r *PGRepo) SetMaturityTier(ctx context.Context, id string, tier int) error {
	const query = `
UPDATE knowledge_documents
SET maturity_tier = $1
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, tier, id)
	if err != nil {
		return err
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
