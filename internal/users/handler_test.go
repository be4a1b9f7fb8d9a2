package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newMeRouter(repo Repo, isGuest bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "google:user-1")
		c.Set("isGuest", isGuest)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(NewService(repo)).RegisterRoutes(api)
	return router
}

func TestMeReturnsProfile(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Upsert(context.Background(), User{
		ID:         "google:user-1",
		Email:      "jane@example.com",
		FullName:   "Jane Doe",
		PictureURL: "https://example.com/jane.png",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	router := newMeRouter(repo, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["email"] != "jane@example.com" || body["fullName"] != "Jane Doe" {
		t.Fatalf("unexpected profile: %v", body)
	}
}

func TestMeRejectsGuests(t *testing.T) {
	router := newMeRouter(NewMemoryRepo(), true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestMeUnknownUser(t *testing.T) {
	router := newMeRouter(NewMemoryRepo(), false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUpsertFromAuthValidates(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "google:user-1"}); err == nil {
		t.Fatalf("expected an error for a user without an email")
	}
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "google:user-1", Email: "jane@example.com"}); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}
}

func TestMemoryRepoUpsertKeepsCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	if err := repo.Upsert(ctx, User{ID: "google:user-1", Email: "jane@example.com"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	first, err := repo.GetByID(ctx, "google:user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := repo.Upsert(ctx, User{ID: "google:user-1", Email: "jane.doe@example.com"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	second, err := repo.GetByID(ctx, "google:user-1")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at changed on update")
	}
	if second.Email != "jane.doe@example.com" {
		t.Fatalf("email not updated: %q", second.Email)
	}
}
