package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"cvbien-backend/internal/bootstrap"
	"cvbien-backend/internal/shared/config"
)

const guestID = "33333333-3333-3333-3333-333333333333"

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func uploadFile(t *testing.T, router *gin.Engine, fileName, contents string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte(contents)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", guestID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDocumentsUploadAndCurrent(t *testing.T) {
	router := newTestApp(t)

	w := uploadFile(t, router, "hello.txt", "Jane Doe\nSoftware Engineer\njane@example.com")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	var uploaded map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if id, ok := uploaded["documentId"].(string); !ok || id == "" {
		t.Fatalf("expected documentId in response: %v", uploaded)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/current", nil)
	req.Header.Set("X-Guest-Id", guestID)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var current map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &current); err != nil {
		t.Fatalf("decode current response: %v", err)
	}
	if current["fileName"] != "hello.txt" {
		t.Fatalf("expected current document hello.txt, got %v", current)
	}
}

func TestDocumentsUploadRejectsUnsupportedType(t *testing.T) {
	router := newTestApp(t)

	w := uploadFile(t, router, "photo.png", "\x89PNG\r\n\x1a\nnot a resume")
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDocumentsCurrentNotFound(t *testing.T) {
	router := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/current", nil)
	req.Header.Set("X-Guest-Id", guestID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDocumentsListRequiresLogin(t *testing.T) {
	router := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	req.Header.Set("X-Guest-Id", guestID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest history, got %d", w.Code)
	}
}
