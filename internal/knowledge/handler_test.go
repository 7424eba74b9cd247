package knowledge_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/thesminc/POCkit-sub000/internal/bootstrap"
	"github.com/thesminc/POCkit-sub000/internal/shared/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		StoreBackend:    "memory",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		SearchWorkers:   2,
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func uploadDocument(t *testing.T, router *gin.Engine, fileName, content string) string {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("upload %s: expected 201, got %d (%s)", fileName, resp.Code, resp.Body.String())
	}

	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if created.DocumentID == "" {
		t.Fatalf("expected documentId, got empty")
	}
	return created.DocumentID
}

func TestDocumentsUploadListGet(t *testing.T) {
	router := newTestRouter(t)

	docID := uploadDocument(t, router, "build-tools.md", "# Build Tools\n\n## Pipeline Runner\nRuns build pipelines.\n")

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	addGuestHeader(reqList)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", respList.Code)
	}
	var listed []struct {
		DocumentID string `json:"documentId"`
		Name       string `json:"name"`
		Title      string `json:"title"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 document, got %d", len(listed))
	}
	if listed[0].DocumentID != docID {
		t.Fatalf("expected listed id %s, got %s", docID, listed[0].DocumentID)
	}
	if listed[0].Name != "build-tools.md" {
		t.Fatalf("expected name build-tools.md, got %s", listed[0].Name)
	}
	if listed[0].Title != "Build Tools" {
		t.Fatalf("expected inferred title Build Tools, got %q", listed[0].Title)
	}
	if listed[0].Content != "" {
		t.Fatalf("list must omit content, got %q", listed[0].Content)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+docID, nil)
	addGuestHeader(reqGet)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", respGet.Code)
	}
	var fetched struct {
		DocumentID string `json:"documentId"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.DocumentID != docID {
		t.Fatalf("expected id %s, got %s", docID, fetched.DocumentID)
	}
	if !strings.Contains(fetched.Content, "Pipeline Runner") {
		t.Fatalf("expected content to carry the section heading, got %q", fetched.Content)
	}
}

func TestDocumentsDuplicateUpload(t *testing.T) {
	router := newTestRouter(t)

	content := "# Duplicate Target\nSome capability text.\n"
	docID := uploadDocument(t, router, "dup.md", content)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, _ := writer.CreateFormFile("file", "dup-again.md")
	if _, err := fileWriter.Write([]byte(content)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate content, got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				DocumentID string `json:"documentId"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "duplicate_document" {
		t.Fatalf("expected code duplicate_document, got %s", envelope.Error.Code)
	}
	if envelope.Error.Details.DocumentID != docID {
		t.Fatalf("expected details to name %s, got %s", docID, envelope.Error.Details.DocumentID)
	}
}

func TestDocumentsSetMaturityTier(t *testing.T) {
	router := newTestRouter(t)

	docID := uploadDocument(t, router, "curated.md", "# Curated Tools\nWell established tooling.\n")

	patch := func(id string, payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/documents/"+id+"/maturity", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		addGuestHeader(req)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	resp := patch(docID, `{"maturityTier": 85}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	var updated struct {
		MaturityTier int `json:"maturityTier"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode patch response: %v", err)
	}
	if updated.MaturityTier != 85 {
		t.Fatalf("expected maturityTier 85, got %d", updated.MaturityTier)
	}

	if resp := patch(docID, `{"maturityTier": 150}`); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range tier, got %d", resp.Code)
	}
	if resp := patch("missing-doc", `{"maturityTier": 50}`); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown document, got %d", resp.Code)
	}
}

func TestDocumentsRequireIdentity(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}
}

func TestDocumentsRejectUnsupportedType(t *testing.T) {
	router := newTestRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, _ := writer.CreateFormFile("file", "tool.exe")
	if _, err := fileWriter.Write([]byte{0x4d, 0x5a, 0x00, 0x01}); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported type, got %d", resp.Code)
	}
}
