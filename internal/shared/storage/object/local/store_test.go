package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	key, size, mimeType, err := store.Save(context.Background(), "guest:abc", "notes.md", strings.NewReader("# Notes\n"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len("# Notes\n")) {
		t.Fatalf("size = %d, want %d", size, len("# Notes\n"))
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("unexpected mime type %q", mimeType)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read stored object: %v", err)
	}
	if string(data) != "# Notes\n" {
		t.Fatalf("stored content %q", data)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../escape.txt"); err == nil {
		t.Fatal("expected error for traversal key")
	}
	if _, err := store.Open(context.Background(), "/etc/passwd"); err == nil {
		t.Fatal("expected error for absolute key")
	}
}

func TestSaveWithKeyWritesSidecar(t *testing.T) {
	store := New(t.TempDir()).(*Store)

	n, err := store.SaveWithKey(context.Background(), "owner/doc.extracted.txt", "text/plain; charset=utf-8", strings.NewReader("extracted"))
	if err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
	if n != int64(len("extracted")) {
		t.Fatalf("written = %d, want %d", n, len("extracted"))
	}

	rc, err := store.Open(context.Background(), "owner/doc.extracted.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	if string(data) != "extracted" {
		t.Fatalf("sidecar content %q", data)
	}
}
