package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvbien-backend/internal/shared/server/middleware"
	"cvbien-backend/internal/shared/server/respond"
)

// AdminChecker decides whether an email belongs to an operator.
type AdminChecker interface {
	IsAdmin(email string) bool
}

// Handler exposes the dashboard endpoint behind the admin guard.
type Handler struct {
	Source  Source
	Checker AdminChecker
}

// NewHandler constructs a Handler.
func NewHandler(source Source, checker AdminChecker) *Handler {
	return &Handler{Source: source, Checker: checker}
}

// RegisterRoutes attaches admin routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/overview", h.RequireAdmin(), h.overview)
}

// RequireAdmin rejects callers whose authenticated email is not on the admin
// list. Guests have no email and are always rejected.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := middleware.UserEmailFromContext(c)
		if email == "" || h.Checker == nil || !h.Checker.IsAdmin(email) {
			respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *Handler) overview(c *gin.Context) {
	overview, err := h.Source.Overview(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load overview", nil)
		return
	}
	respond.JSON(c, http.StatusOK, overview)
}
