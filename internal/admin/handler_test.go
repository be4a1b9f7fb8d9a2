package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type allowList []string

func (a allowList) IsAdmin(email string) bool {
	for _, admin := range a {
		if admin == email {
			return true
		}
	}
	return false
}

func newAdminRouter(checker AdminChecker, email string, isGuest bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "google:user-1")
		c.Set("isGuest", isGuest)
		if email != "" {
			c.Set("userEmail", email)
		}
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(EmptySource{}, checker).RegisterRoutes(api)
	return router
}

func TestOverviewAllowsAdmin(t *testing.T) {
	router := newAdminRouter(allowList{"ops@example.com"}, "ops@example.com", false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/overview", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var overview Overview
	if err := json.Unmarshal(w.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if overview.Users == nil || overview.Transactions == nil {
		t.Fatalf("empty source must serve empty slices, got %+v", overview)
	}
}

func TestOverviewRejectsNonAdmin(t *testing.T) {
	router := newAdminRouter(allowList{"ops@example.com"}, "user@example.com", false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/overview", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestOverviewRejectsGuests(t *testing.T) {
	// Guests carry no email, so the guard rejects them.
	router := newAdminRouter(allowList{"ops@example.com"}, "", true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/overview", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
