package knowledge

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. List returns documents
// in ingest order so that repeated searches over an unchanged catalog stay
// deterministic.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		docs: make(map[string]Document),
	}
}

// Create stores a new document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.ID]; ok {
		return ErrDuplicate
	}
	for _, existing := range r.docs {
		if existing.Checksum != "" && existing.Checksum == doc.Checksum {
			return ErrDuplicate
		}
	}
	r.docs[doc.ID] = doc
	return nil
}

// GetByID returns a document by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// GetByChecksum returns the document with the given checksum.
func (r *MemoryRepo) GetByChecksum(ctx context.Context, checksum string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if checksum == "" {
		return Document{}, ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.docs {
		if doc.Checksum == checksum {
			return doc, nil
		}
	}
	return Document{}, ErrNotFound
}

// List returns all documents ordered by creation time, then ID.
func (r *MemoryRepo) List(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Document, 0, len(r.docs))
	for _, doc := range r.docs {
		out = append(out, doc)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SetMaturityTier overrides the maturity tier for a document.
func (r *MemoryRepo) SetMaturityTier(ctx context.Context, id string, tier int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	doc.MaturityTier = tier
	r.docs[id] = doc
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
