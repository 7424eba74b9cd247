package knowledge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS knowledge_documents (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	content       TEXT NOT NULL,
	size_bytes    INTEGER NOT NULL DEFAULT 0,
	checksum      TEXT NOT NULL,
	source        TEXT NOT NULL DEFAULT 'upload',
	storage_key   TEXT,
	maturity_tier INTEGER NOT NULL DEFAULT 0,
	created_at    TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_knowledge_documents_checksum ON knowledge_documents(checksum);
CREATE INDEX IF NOT EXISTS idx_knowledge_documents_created ON knowledge_documents(created_at);
`

// SQLiteRepo implements Repo on a single local SQLite file, for running the
// engine without Postgres. Timestamps are stored as RFC 3339 text.
type SQLiteRepo struct {
	db *sql.DB
}

// NewSQLiteRepo opens (creating if needed) the database at path and applies
// the schema. Use ":memory:" for an ephemeral database.
func NewSQLiteRepo(path string) (*SQLiteRepo, error) {
	if path == "" {
		return nil, errors.New("sqlite path required")
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		// Each pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// Close closes the underlying database connection.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// Create inserts a new document.
func (r *SQLiteRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO knowledge_documents (id, name, title, content, size_bytes, checksum, source, storage_key, maturity_tier, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	source := doc.Source
	if source == "" {
		source = "upload"
	}
	var storageKey sql.NullString
	if doc.StorageKey != "" {
		storageKey = sql.NullString{String: doc.StorageKey, Valid: true}
	}

	_, err := r.db.ExecContext(
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
		doc.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil && isSQLiteUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetByID fetches a document by ID.
func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `
SELECT id, name, title, content, size_bytes, checksum, source, storage_key, maturity_tier, created_at
FROM knowledge_documents
WHERE id = ?
LIMIT 1`
	return r.getOne(ctx, query, id)
}

// GetByChecksum fetches the document with the given content checksum.
func (r *SQLiteRepo) GetByChecksum(ctx context.Context, checksum string) (Document, error) {
	const query = `
SELECT id, name, title, content, size_bytes, checksum, source, storage_key, maturity_tier, created_at
FROM knowledge_documents
WHERE checksum = ?
LIMIT 1`
	return r.getOne(ctx, query, checksum)
}

func (r *SQLiteRepo) getOne(ctx context.Context, query string, arg any) (Document, error) {
	var doc Document
	var storageKey sql.NullString
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&doc.ID,
		&doc.Name,
		&doc.Title,
		&doc.Content,
		&doc.SizeBytes,
		&doc.Checksum,
		&doc.Source,
		&storageKey,
		&doc.MaturityTier,
		&createdAt,
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
	doc.CreatedAt = parseSQLiteTime(createdAt)
	return doc, nil
}

// List returns all documents in ingest order.
func (r *SQLiteRepo) List(ctx context.Context) ([]Document, error) {
	const query = `
SELECT id, name, title, content, size_bytes, checksum, source, storage_key, maturity_tier, created_at
FROM knowledge_documents
ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var storageKey sql.NullString
		var createdAt string
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
			&createdAt,
		); err != nil {
			return nil, err
		}
		if storageKey.Valid {
			doc.StorageKey = storageKey.String
		}
		doc.CreatedAt = parseSQLiteTime(createdAt)
		out = append(out, doc)
	}
	return out, rows.Err()
}

// SetMaturityTier overrides the maturity tier for a document.
func (r *SQLiteRepo) SetMaturityTier(ctx context.Context, id string, tier int) error {
	const query = `
UPDATE knowledge_documents
SET maturity_tier = ?
WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, tier, id)
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

func parseSQLiteTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func isSQLiteUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ Repo = (*SQLiteRepo)(nil)
