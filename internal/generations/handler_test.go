package generations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newHandlerRouter(f *fixture, isGuest bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", f.userID)
		c.Set("isGuest", isGuest)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(f.svc).RegisterRoutes(api)
	return router
}

func TestCreateEndpoint(t *testing.T) {
	f := newFixture(t)
	router := newHandlerRouter(f, true)

	body := `{"documentId":"doc-1","jobDescription":"We are looking for a python backend engineer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if id, ok := resp["generationId"].(string); !ok || id == "" {
		t.Fatalf("expected generationId, got %v", resp)
	}
	if resp["downloaded"] != false {
		t.Fatalf("expected downloaded=false, got %v", resp)
	}
}

func TestCreateEndpointRequiresJobDescription(t *testing.T) {
	f := newFixture(t)
	router := newHandlerRouter(f, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generations", strings.NewReader(`{"documentId":"doc-1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateEndpointInsufficientCredits(t *testing.T) {
	f := newFixture(t)
	f.ledger.balance = 0
	router := newHandlerRouter(f, true)

	body := `{"documentId":"doc-1","jobDescription":"python job"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "insufficient_credits") {
		t.Fatalf("expected insufficient_credits code, got %s", w.Body.String())
	}
}

func TestCreateEndpointRewriteFailure(t *testing.T) {
	f := newFixture(t)
	f.llm.err = context.DeadlineExceeded
	router := newHandlerRouter(f, true)

	body := `{"documentId":"doc-1","jobDescription":"python job"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestListEndpointRequiresLogin(t *testing.T) {
	f := newFixture(t)
	router := newHandlerRouter(f, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest history, got %d", w.Code)
	}
}

func TestPreviewAndDownloadEndpoints(t *testing.T) {
	f := newFixture(t)
	router := newHandlerRouter(f, true)

	cv, err := f.svc.Create(context.Background(), f.userID, f.docID, "python backend position")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generations/"+cv.ID+"/preview", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("preview: expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var preview previewResponse
	if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if len(preview.Lines) == 0 {
		t.Fatalf("expected preview lines")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/generations/"+cv.ID+"/download", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "cv_optimized.pdf") {
		t.Fatalf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatalf("expected PDF body")
	}
}

func TestGetEndpointNotFound(t *testing.T) {
	f := newFixture(t)
	router := newHandlerRouter(f, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generations/does-not-exist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDownloadFileName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"resume.pdf", "resume_optimized.pdf"},
		{"cv.tailored.docx", "cv.tailored_optimized.pdf"},
		{"noext", "noext_optimized.pdf"},
		{"", "cv_optimized.pdf"},
	}
	for _, tc := range cases {
		if got := downloadFileName(tc.in); got != tc.want {
			t.Errorf("downloadFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
