package payments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches payment routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments/packs", h.packs)
	rg.POST("/payments/checkout", h.checkout)
	rg.POST("/payments/:id/confirm", h.confirm)
	rg.GET("/payments", h.list)
}

func (h *Handler) packs(c *gin.Context) {
	respond.JSON(c, http.StatusOK, Packs)
}

type checkoutRequest struct {
	PackID string `json:"packId"`
}

type transactionResponse struct {
	TransactionID string    `json:"transactionId"`
	PackID        string    `json:"packId"`
	Credits       int       `json:"credits"`
	AmountCents   int       `json:"amountCents"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toResponse(tx Transaction) transactionResponse {
	return transactionResponse{
		TransactionID: tx.ID,
		PackID:        tx.PackID,
		Credits:       tx.Credits,
		AmountCents:   tx.AmountCents,
		Currency:      tx.Currency,
		Status:        tx.Status,
		CreatedAt:     tx.CreatedAt,
	}
}

func (h *Handler) checkout(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to buy credits", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	tx, checkoutURL, err := h.Svc.Checkout(c.Request.Context(), userID, req.PackID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownPack):
			respond.Error(c, http.StatusBadRequest, "unknown_pack", "unknown credit pack", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "payment_failed", "failed to start checkout", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"transaction": toResponse(tx),
		"checkoutUrl": checkoutURL,
	})
}

func (h *Handler) confirm(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	tx, err := h.Svc.Confirm(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "transaction not found", nil)
		case errors.Is(err, ErrPaymentIncomplete):
			respond.Error(c, http.StatusConflict, "payment_incomplete", "payment not completed yet", gin.H{
				"status": tx.Status,
			})
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "payment_failed", "failed to confirm payment", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(tx))
}

func (h *Handler) list(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view purchases", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			limit = parsed
		}
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	txs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list transactions", nil)
		return
	}

	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toResponse(tx))
	}
	respond.JSON(c, http.StatusOK, resp)
}
