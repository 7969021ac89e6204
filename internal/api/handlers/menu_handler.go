package handlers

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/service"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

type MenuHandler struct {
	service *service.MenuService
	log     *zap.Logger
}

func NewMenuHandler(svc *service.MenuService, log *zap.Logger) *MenuHandler {
	return &MenuHandler{service: svc, log: log}
}

// GetMenu handles GET /menus/{businessID}?at=RFC3339
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	businessID, ok := businessIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}
	at, err := parseTimeOrZero(r.URL.Query().Get("at"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid at; use RFC3339")
		return
	}

	menu, err := h.service.PriceMenu(r.Context(), businessID, at)
	if err != nil {
		h.log.Error("price menu", zap.String("business_id", businessID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

// GetProductPrice handles GET /menus/{businessID}/products/{productID}/price
func (h *MenuHandler) GetProductPrice(w http.ResponseWriter, r *http.Request) {
	businessID, ok := businessIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}
	at, err := parseTimeOrZero(r.URL.Query().Get("at"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid at; use RFC3339")
		return
	}

	item, err := h.service.PriceProduct(r.Context(), businessID, chi.URLParam(r, "productID"), at)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product_not_found")
			return
		}
		h.log.Error("price product", zap.String("business_id", businessID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// GetQRCode handles GET /menus/{businessID}/qr?size=
// and returns a PNG linking to the public menu.
func (h *MenuHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	businessID, ok := businessIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}
	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > maxQRSize {
			writeError(w, http.StatusBadRequest, "size must be between 64 and 1024")
			return
		}
		size = n
	}

	qr, err := qrcode.New(h.service.MenuURL(businessID), qrcode.Medium)
	if err != nil {
		h.log.Error("build qr code", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(size)); err != nil {
		h.log.Error("encode qr code", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// InvalidateCache handles POST /admin/menus/{businessID}/cache/invalidate
func (h *MenuHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	businessID, ok := businessIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}
	if err := h.service.InvalidatePromotions(r.Context(), businessID); err != nil {
		h.log.Error("invalidate promotions", zap.String("business_id", businessID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "cache_invalidated"})
}
