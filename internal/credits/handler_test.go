package credits

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetBalanceEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "guest:55555555-5555-5555-5555-555555555555")
		c.Set("isGuest", true)
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(NewService(NewMemoryStore())).RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/credits", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Credits int `json:"credits"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Credits != StarterCredits {
		t.Fatalf("credits = %d, want %d", resp.Credits, StarterCredits)
	}
}
