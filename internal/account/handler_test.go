package account

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"cvbien-backend/internal/documents"
	"cvbien-backend/internal/generations"
)

func newClaimRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "google:user-1")
		c.Set("isGuest", false)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return router
}

func TestClaimGuestMigratesData(t *testing.T) {
	docRepo := documents.NewMemoryRepo()
	genRepo := generations.NewMemoryRepo()
	svc := NewService(docRepo, genRepo)
	router := newClaimRouter(svc)

	guestID := "11111111-1111-1111-1111-111111111111"
	guestUserID := "guest:" + guestID

	ctx := context.Background()
	doc := documents.Document{
		ID:         "doc-1",
		UserID:     guestUserID,
		FileName:   "resume.pdf",
		MimeType:   "application/pdf",
		StorageKey: "k/resume.pdf",
		CreatedAt:  time.Now().UTC(),
	}
	if err := docRepo.Create(ctx, doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	cv := generations.GeneratedCV{
		ID:             "gen-1",
		UserID:         guestUserID,
		DocumentID:     "doc-1",
		FileName:       "resume.pdf",
		JobDescription: "backend role",
		OptimizedText:  "Jane Doe\n\njane@example.com",
		Language:       "english",
		CreatedAt:      time.Now().UTC(),
	}
	if err := genRepo.Create(ctx, cv); err != nil {
		t.Fatalf("seed generation: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", guestID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var result ClaimResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.MigratedDocuments != 1 || result.MigratedGenerations != 1 {
		t.Fatalf("unexpected claim result: %+v", result)
	}

	if _, err := docRepo.GetByID(ctx, "google:user-1", "doc-1"); err != nil {
		t.Fatalf("expected document to belong to authed user: %v", err)
	}
	if _, err := genRepo.GetByID(ctx, "google:user-1", "gen-1"); err != nil {
		t.Fatalf("expected generation to belong to authed user: %v", err)
	}
}

func TestClaimGuestRequiresHeader(t *testing.T) {
	svc := NewService(documents.NewMemoryRepo(), generations.NewMemoryRepo())
	router := newClaimRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestClaimGuestRejectsInvalidGuestID(t *testing.T) {
	svc := NewService(documents.NewMemoryRepo(), generations.NewMemoryRepo())
	router := newClaimRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", "not-a-uuid")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestClaimGuestRejectsGuestCaller(t *testing.T) {
	svc := NewService(documents.NewMemoryRepo(), generations.NewMemoryRepo())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "guest:22222222-2222-2222-2222-222222222222")
		c.Set("isGuest", true)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", "22222222-2222-2222-2222-222222222222")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
