package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirSource serves a directory of markdown and plain-text files as a
// read-only Source. The file name without its extension doubles as the
// document ID, so a curated knowledge base can live in version control and
// be searched without any database.
type DirSource struct {
	dir string
}

// NewDirSource constructs a DirSource over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// List enumerates the readable documents in the directory, sorted by file
// name.
func (s *DirSource) List(ctx context.Context) ([]Ref, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list knowledge dir %s: %w", s.dir, err)
	}

	refs := make([]Ref, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !readableExt(name) {
			continue
		}
		refs = append(refs, Ref{
			ID:   strings.TrimSuffix(name, filepath.Ext(name)),
			Name: name,
		})
	}
	return refs, nil
}

// Read returns the text of the document with the given ID.
func (s *DirSource) Read(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", ErrNotFound
	}

	for _, ext := range []string{".md", ".markdown", ".txt", ".text"} {
		data, err := os.ReadFile(filepath.Join(s.dir, id+ext))
		if err == nil {
			text := strings.TrimPrefix(string(data), "\uFEFF")
			text = strings.ReplaceAll(text, "\r\n", "\n")
			return strings.ReplaceAll(text, "\r", "\n"), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read knowledge document %s: %w", id, err)
		}
	}
	return "", ErrNotFound
}

func readableExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".txt", ".text":
		return true
	}
	return false
}

var _ Source = (*DirSource)(nil)
