package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
)

func docxPayload(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextFromBytes_Markdown(t *testing.T) {
	input := []byte("# Migration Toolkit\r\n\r\n## Overview\r\nConverts COBOL batch jobs.")
	got, err := ExtractTextFromBytes(context.Background(), input, "text/markdown", "toolkit.md")
	if err != nil {
		t.Fatalf("extract markdown: %v", err)
	}
	want := "# Migration Toolkit\n\n## Overview\nConverts COBOL batch jobs."
	if got != want {
		t.Fatalf("unexpected text:\n%q\nwant:\n%q", got, want)
	}
}

func TestExtractTextFromBytes_InfersTypeFromExtension(t *testing.T) {
	got, err := ExtractTextFromBytes(context.Background(), []byte("plain notes"), "", "notes.txt")
	if err != nil {
		t.Fatalf("extract by extension: %v", err)
	}
	if got != "plain notes" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTextFromBytes_OctetStreamMarkdown(t *testing.T) {
	got, err := ExtractTextFromBytes(context.Background(), []byte("## Capabilities\nbody"), "application/octet-stream", "caps.markdown")
	if err != nil {
		t.Fatalf("extract octet-stream markdown: %v", err)
	}
	if got != "## Capabilities\nbody" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTextFromBytes_ZipDocxNormalizes(t *testing.T) {
	data := docxPayload(t, "Legacy modernization toolkit")
	got, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "toolkit.docx")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	if got != "Legacy modernization toolkit" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType for plain zip, got: %v", err)
	}
}

func TestExtractTextFromBytes_BinaryTextExtensionRejected(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte{0xff, 0xfe, 0x00, 0x01}, "", "garbage.txt")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType for binary payload, got: %v", err)
	}
}

func TestExtractTextFromBytes_UnknownBinaryRejected(t *testing.T) {
	// MZ header followed by a NUL byte; decodes as UTF-8 but is not text.
	_, err := ExtractTextFromBytes(context.Background(), []byte{0x4d, 0x5a, 0x00, 0x01}, "", "tool.exe")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType for executable payload, got: %v", err)
	}
}

func TestExtractTextFromBytes_StripsBOM(t *testing.T) {
	got, err := ExtractTextFromBytes(context.Background(), []byte("\uFEFF# Title"), "text/plain", "t.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "# Title" {
		t.Fatalf("BOM not stripped: %q", got)
	}
}
