package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/models"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/service"
)

// --- Request / Response DTOs ---

type QuoteRequest struct {
	Product        models.Product         `json:"product"`
	TimedDiscounts []models.TimedDiscount `json:"timed_discounts"`
	HappyHours     []models.HappyHour     `json:"happy_hours"`
	At             string                 `json:"at,omitempty"` // optional, RFC3339
}

type QuoteResponse struct {
	Pricing     models.PriceInfo    `json:"pricing"`
	Diagnostics []models.Diagnostic `json:"diagnostics,omitempty"`
}

type PricingHandler struct {
	service *service.MenuService
	log     *zap.Logger
}

func NewPricingHandler(svc *service.MenuService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{service: svc, log: log}
}

// Quote handles POST /pricing/quote
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	at, err := parseTimeOrZero(req.At)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid at; use RFC3339")
		return
	}

	info, diags, err := h.service.Quote(req.Product, req.TimedDiscounts, req.HappyHours, at)
	if err != nil {
		if errors.Is(err, models.ErrInvalidProductPrice) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid_product_price", "detail": err.Error()})
			return
		}
		h.log.Error("quote", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, QuoteResponse{Pricing: info, Diagnostics: diags})
}
