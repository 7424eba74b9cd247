package requirements_test

import (
	"encoding/json"
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

func postExtract(t *testing.T, router *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requirements/extract", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestExtractEndpoint(t *testing.T) {
	router := newTestRouter(t)

	resp := postExtract(t, router, `{"problemStatement": "We must migrate our legacy mainframe system and need to integrate with a modern API"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}

	var out struct {
		Requirements []struct {
			ID       string   `json:"id"`
			Category string   `json:"category"`
			Priority string   `json:"priority"`
			Keywords []string `json:"keywords"`
		} `json:"requirements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(out.Requirements))
	}
	req := out.Requirements[0]
	if req.ID != "REQ-1" {
		t.Fatalf("expected REQ-1, got %s", req.ID)
	}
	if req.Category != "integration" {
		t.Fatalf("expected integration, got %s", req.Category)
	}
	if req.Priority != "critical" {
		t.Fatalf("expected critical, got %s", req.Priority)
	}
	if len(req.Keywords) == 0 {
		t.Fatalf("expected keywords, got none")
	}
}

func TestExtractEndpointBlankStatement(t *testing.T) {
	router := newTestRouter(t)

	resp := postExtract(t, router, `{"problemStatement": "   "}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var out struct {
		Requirements []json.RawMessage `json:"requirements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Requirements) != 0 {
		t.Fatalf("expected no requirements, got %d", len(out.Requirements))
	}
}

func TestExtractEndpointInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	resp := postExtract(t, router, `{"problemStatement": 7}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid body, got %d", resp.Code)
	}
}
