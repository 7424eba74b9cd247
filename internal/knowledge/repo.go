package knowledge

import "context"

// Repo defines persistence operations for knowledge documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	GetByChecksum(ctx context.Context, checksum string) (Document, error)
	List(ctx context.Context) ([]Document, error)
	SetMaturityTier(ctx context.Context, id string, tier int) error
}

// Source is the read-only view of the knowledge base that the search index
// consumes: enumerate readable documents, then read one document's text.
// Read may fail for an individual document; callers isolate such failures
// instead of aborting the whole scan.
type Source interface {
	List(ctx context.Context) ([]Ref, error)
	Read(ctx context.Context, id string) (string, error)
}

// NewRepoSource exposes a Repo as a Source for the search index.
func NewRepoSource(repo Repo) Source {
	return repoSource{repo: repo}
}

type repoSource struct {
	repo Repo
}

func (s repoSource) List(ctx context.Context) ([]Ref, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]Ref, 0, len(docs))
	for _, doc := range docs {
		refs = append(refs, Ref{ID: doc.ID, Name: doc.Name})
	}
	return refs, nil
}

func (s repoSource) Read(ctx context.Context, id string) (string, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}
