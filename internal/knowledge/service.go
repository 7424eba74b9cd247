package knowledge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thesminc/POCkit-sub000/internal/extract"
	"github.com/thesminc/POCkit-sub000/internal/shared/metrics"
	"github.com/thesminc/POCkit-sub000/internal/shared/storage/object"
	"github.com/thesminc/POCkit-sub000/internal/shared/telemetry"
	"github.com/thesminc/POCkit-sub000/internal/shared/util"
)

// Service contains business logic for the knowledge catalog.
type Service struct {
	Repo Repo

	// Store, when set, archives the raw upload alongside the extracted text.
	Store object.ObjectStore
}

// IngestInput describes one document to ingest.
type IngestInput struct {
	FileName string
	MIMEType string
	Data     []byte
	Source   string
}

// Ingest extracts text from the payload, rejects duplicates by checksum,
// archives the raw bytes when an object store is configured, and records the
// document. ownerKey namespaces the archived object.
func (s *Service) Ingest(ctx context.Context, ownerKey string, in IngestInput) (Document, error) {
	if in.FileName == "" || len(in.Data) == 0 {
		return Document{}, fmt.Errorf("%w: file name and content required", ErrInvalidInput)
	}

	text, err := extract.ExtractTextFromBytes(ctx, in.Data, in.MIMEType, in.FileName)
	if err != nil {
		return Document{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Document{}, ErrNoText
	}

	checksum := util.Checksum(in.Data)
	if existing, err := s.Repo.GetByChecksum(ctx, checksum); err == nil {
		return existing, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return Document{}, err
	}

	storageKey := ""
	if s.Store != nil {
		key, _, _, err := s.Store.Save(ctx, ownerKey, in.FileName, bytes.NewReader(in.Data))
		if err != nil {
			return Document{}, fmt.Errorf("archive raw document: %w", err)
		}
		storageKey = key
		saveExtracted(ctx, s.Store, key+".extracted.txt", text)
	}

	source := in.Source
	if source == "" {
		source = "upload"
	}

	doc := Document{
		ID:         uuid.NewString(),
		Name:       in.FileName,
		Title:      inferTitle(text, in.FileName),
		Content:    text,
		SizeBytes:  int64(len(in.Data)),
		Checksum:   checksum,
		Source:     source,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}
	metrics.IncDocumentIngested()
	return doc, nil
}

// IngestDir walks a directory and ingests every readable file in it,
// skipping duplicates. It returns the number of documents ingested.
func (s *Service) IngestDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read knowledge dir %s: %w", dir, err)
	}

	ingested := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".md", ".markdown", ".txt", ".text", ".pdf", ".docx":
		default:
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			telemetry.Warn("knowledge: skip unreadable file", map[string]any{"file": name, "error": err.Error()})
			continue
		}

		_, err = s.Ingest(ctx, "system", IngestInput{FileName: name, Data: data, Source: "dir"})
		switch {
		case err == nil:
			ingested++
		case errors.Is(err, ErrDuplicate):
			// Already in the catalog from a previous run.
		case errors.Is(err, extract.ErrUnsupportedType), errors.Is(err, ErrNoText):
			telemetry.Warn("knowledge: skip file", map[string]any{"file": name, "error": err.Error()})
		default:
			return ingested, fmt.Errorf("ingest %s: %w", name, err)
		}
	}
	return ingested, nil
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: document id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns the full catalog in ingest order.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	return s.Repo.List(ctx)
}

// SetMaturityTier overrides the maturity tier used when scoring ecosystem
// maturity for tools found in this document. Tier 0 clears the override.
func (s *Service) SetMaturityTier(ctx context.Context, id string, tier int) error {
	if id == "" {
		return fmt.Errorf("%w: document id required", ErrInvalidInput)
	}
	if tier < 0 || tier > 100 {
		return fmt.Errorf("%w: maturity tier must be between 0 and 100", ErrInvalidInput)
	}
	return s.Repo.SetMaturityTier(ctx, id, tier)
}

// MaturityTierFor reports the operator-assigned maturity tier for a
// document. The second return is false when no tier has been set or
// the document is unknown.
func (s *Service) MaturityTierFor(ctx context.Context, documentID string) (int, bool) {
	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil || doc.MaturityTier <= 0 {
		return 0, false
	}
	return doc.MaturityTier, true
}

// Source exposes the catalog as a read-only Source for the search index.
func (s *Service) Source() Source {
	return NewRepoSource(s.Repo)
}

type keySaver interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}

// saveExtracted archives the extracted text next to the raw object. The
// catalog row is the source of truth, so a failed archive only warns.
func saveExtracted(ctx context.Context, store object.ObjectStore, key string, text string) {
	saver, ok := store.(keySaver)
	if !ok {
		return
	}
	if _, err := saver.SaveWithKey(ctx, key, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		telemetry.Warn("knowledge: archive extracted text", map[string]any{"key": key, "error": err.Error()})
	}
}

// inferTitle derives a display title from the first non-empty line,
// stripping any markdown heading marker, and falls back to the file name.
func inferTitle(text, fileName string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if title := strings.TrimSpace(strings.TrimLeft(line, "# ")); title != "" {
			return title
		}
	}
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if base != "" {
		return base
	}
	return fileName
}
