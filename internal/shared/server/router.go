package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvbien-backend/internal/account"
	"cvbien-backend/internal/admin"
	googleauth "cvbien-backend/internal/auth"
	"cvbien-backend/internal/credits"
	"cvbien-backend/internal/documents"
	"cvbien-backend/internal/generations"
	"cvbien-backend/internal/payments"
	"cvbien-backend/internal/shared/config"
	"cvbien-backend/internal/shared/metrics"
	"cvbien-backend/internal/shared/server/middleware"
	"cvbien-backend/internal/shared/server/respond"
	"cvbien-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up. Nil handlers are
// skipped so tests can build a partial router.
type RouterDeps struct {
	Config            config.Config
	AccountHandler    *account.Handler
	AdminHandler      *admin.Handler
	CreditsHandler    *credits.Handler
	DocumentHandler   *documents.Handler
	GenerationHandler *generations.Handler
	PaymentsHandler   *payments.Handler
	UserHandler       *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(generationRateLimit()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.GenerationHandler != nil {
		deps.GenerationHandler.RegisterRoutes(api)
	}
	if deps.CreditsHandler != nil {
		deps.CreditsHandler.RegisterRoutes(api)
	}
	if deps.PaymentsHandler != nil {
		deps.PaymentsHandler.RegisterRoutes(api)
	}
	if deps.AdminHandler != nil {
		deps.AdminHandler.RegisterRoutes(api)
	}

	return r
}

// generationRateLimit throttles CV generation per user. Other routes are not
// limited.
func generationRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"GENERATE": {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/generations" {
				return "GENERATE"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
