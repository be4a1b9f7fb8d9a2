package generations

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cvbien-backend/internal/display"
	"cvbien-backend/internal/shared/server/middleware"
	"cvbien-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generations", h.create)
	rg.GET("/generations", h.list)
	rg.GET("/generations/:id", h.get)
	rg.GET("/generations/:id/preview", h.preview)
	rg.GET("/generations/:id/download", h.download)
}

type createRequest struct {
	DocumentID     string `json:"documentId"`
	JobDescription string `json:"jobDescription"`
}

type generationResponse struct {
	GenerationID   string    `json:"generationId"`
	DocumentID     string    `json:"documentId"`
	FileName       string    `json:"fileName"`
	Language       string    `json:"language"`
	OriginalScore  int       `json:"originalScore"`
	OptimizedScore int       `json:"optimizedScore"`
	Downloaded     bool      `json:"downloaded"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toResponse(cv GeneratedCV) generationResponse {
	return generationResponse{
		GenerationID:   cv.ID,
		DocumentID:     cv.DocumentID,
		FileName:       cv.FileName,
		Language:       cv.Language,
		OriginalScore:  cv.OriginalScore,
		OptimizedScore: cv.OptimizedScore,
		Downloaded:     cv.Downloaded,
		CreatedAt:      cv.CreatedAt,
	}
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "jobDescription is required", nil)
		return
	}

	cv, err := h.Svc.Create(c.Request.Context(), userID, strings.TrimSpace(req.DocumentID), req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientCredits):
			respond.Error(c, http.StatusPaymentRequired, "insufficient_credits", "not enough credits to generate", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrRewriteFailed):
			respond.Error(c, http.StatusBadGateway, "rewrite_failed", "resume optimization failed, please retry", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate resume", nil)
		}
		return
	}

	c.Set("generationId", cv.ID)
	respond.JSON(c, http.StatusCreated, toResponse(cv))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	cv, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(cv))
}

func (h *Handler) list(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	limit, offset := parsePage(c)

	cvs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list generations", nil)
		}
		return
	}

	resp := make([]generationResponse, 0, len(cvs))
	for _, cv := range cvs {
		resp = append(resp, toResponse(cv))
	}
	respond.JSON(c, http.StatusOK, resp)
}

type previewResponse struct {
	Generation generationResponse `json:"generation"`
	Lines      []display.Line     `json:"lines"`
}

func (h *Handler) preview(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	preview, err := h.Svc.GetPreview(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	respond.JSON(c, http.StatusOK, previewResponse{
		Generation: toResponse(preview.Generation),
		Lines:      preview.Lines,
	})
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	pdfBytes, cv, err := h.Svc.Download(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientCredits):
			respond.Error(c, http.StatusPaymentRequired, "insufficient_credits", "not enough credits to download", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "generation not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render pdf", nil)
		}
		return
	}

	fileName := downloadFileName(cv.FileName)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "generation not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch generation", nil)
	}
}

func downloadFileName(original string) string {
	base := strings.TrimSpace(original)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	if base == "" {
		base = "cv"
	}
	return base + "_optimized.pdf"
}

func parsePage(c *gin.Context) (limit, offset int) {
	limit = 20
	offset = 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
