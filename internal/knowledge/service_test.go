package knowledge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/thesminc/POCkit-sub000/internal/shared/storage/object/local"
	"github.com/thesminc/POCkit-sub000/internal/shared/util"
)

func TestServiceIngestMarkdown(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	data := []byte("# Migration Toolkit\n\n## Overview\nConverts COBOL batch jobs.")

	doc, err := svc.Ingest(context.Background(), "guest-1", IngestInput{
		FileName: "toolkit.md",
		MIMEType: "text/markdown",
		Data:     data,
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if doc.ID == "" {
		t.Fatal("expected a generated document id")
	}
	if doc.Title != "Migration Toolkit" {
		t.Fatalf("expected inferred title, got %q", doc.Title)
	}
	if doc.SizeBytes != int64(len(data)) {
		t.Fatalf("expected size %d, got %d", len(data), doc.SizeBytes)
	}
	if doc.Checksum != util.Checksum(data) {
		t.Fatalf("unexpected checksum: %q", doc.Checksum)
	}
	if doc.Source != "upload" {
		t.Fatalf("expected source upload, got %q", doc.Source)
	}

	stored, err := svc.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Content != string(data) {
		t.Fatalf("unexpected stored content: %q", stored.Content)
	}
}

func TestServiceIngestDuplicateReturnsExisting(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	data := []byte("## Capabilities\nNightly batch export.")

	first, err := svc.Ingest(context.Background(), "guest-1", IngestInput{FileName: "a.md", Data: data})
	if err != nil {
		t.Fatalf("first Ingest: %v", err)
	}

	second, err := svc.Ingest(context.Background(), "guest-1", IngestInput{FileName: "b.md", Data: data})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected existing document back, got %q", second.ID)
	}

	docs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
}

func TestServiceIngestRejectsBadInput(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, "guest-1", IngestInput{FileName: "", Data: []byte("x")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Ingest(ctx, "guest-1", IngestInput{FileName: "a.md", Data: nil}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty data: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Ingest(ctx, "guest-1", IngestInput{FileName: "blank.md", Data: []byte("  \n\t  ")}); !errors.Is(err, ErrNoText) {
		t.Fatalf("blank text: expected ErrNoText, got %v", err)
	}
}

func TestServiceIngestArchivesRawAndExtracted(t *testing.T) {
	store := local.New(t.TempDir())
	svc := &Service{Repo: NewMemoryRepo(), Store: store}
	data := []byte("# Catalog\n\nrecord layout conversion")

	doc, err := svc.Ingest(context.Background(), "guest-1", IngestInput{FileName: "catalog.md", Data: data})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if doc.StorageKey == "" {
		t.Fatal("expected a storage key")
	}

	raw, err := store.Open(context.Background(), doc.StorageKey)
	if err != nil {
		t.Fatalf("open archived raw: %v", err)
	}
	defer raw.Close()
	rawBytes, err := io.ReadAll(raw)
	if err != nil {
		t.Fatalf("read archived raw: %v", err)
	}
	if !bytes.Equal(rawBytes, data) {
		t.Fatalf("archived raw does not match upload")
	}

	extracted, err := store.Open(context.Background(), doc.StorageKey+".extracted.txt")
	if err != nil {
		t.Fatalf("open extracted copy: %v", err)
	}
	defer extracted.Close()
	extractedBytes, err := io.ReadAll(extracted)
	if err != nil {
		t.Fatalf("read extracted copy: %v", err)
	}
	if string(extractedBytes) != doc.Content {
		t.Fatalf("extracted copy does not match content")
	}
}

func TestServiceSetMaturityTier(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	doc, err := svc.Ingest(ctx, "guest-1", IngestInput{FileName: "a.md", Data: []byte("# Alpha\nbody")})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if err := svc.SetMaturityTier(ctx, doc.ID, 101); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("tier 101: expected ErrInvalidInput, got %v", err)
	}
	if err := svc.SetMaturityTier(ctx, doc.ID, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("tier -1: expected ErrInvalidInput, got %v", err)
	}
	if err := svc.SetMaturityTier(ctx, doc.ID, 90); err != nil {
		t.Fatalf("SetMaturityTier: %v", err)
	}

	got, err := svc.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.MaturityTier != 90 {
		t.Fatalf("expected tier 90, got %d", got.MaturityTier)
	}
}

func TestServiceIngestDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a-core.md":   "# Core\nAnalysis helpers",
		"b-tools.txt": "Batch conversion tools",
		"dup.md":      "# Core\nAnalysis helpers",
		"skip.exe":    "binary",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	svc := &Service{Repo: NewMemoryRepo()}
	count, err := svc.IngestDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestDir: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 ingested, got %d", count)
	}

	docs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if doc.Source != "dir" {
			t.Fatalf("expected source dir, got %q", doc.Source)
		}
	}
}

func TestInferTitle(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		fileName string
		want     string
	}{
		{"heading", "# Migration Toolkit\nbody", "t.md", "Migration Toolkit"},
		{"subheading first", "\n\n## Overview\nbody", "t.md", "Overview"},
		{"plain line", "plain first line\nmore", "t.md", "plain first line"},
		{"empty falls back to file base", "", "notes.txt", "notes"},
		{"bare marks skipped", "####\nNext line", "t.md", "Next line"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := inferTitle(tc.text, tc.fileName); got != tc.want {
				t.Fatalf("inferTitle(%q, %q) = %q, want %q", tc.text, tc.fileName, got, tc.want)
			}
		})
	}
}
