package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Cheertaboi/qr-menu-pricing-service/internal/api/handlers"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/api/middleware"
	"github.com/Cheertaboi/qr-menu-pricing-service/internal/service"
)

// NewRouter builds the HTTP router for the menu pricing service
func NewRouter(svc *service.MenuService, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)

	menuHandler := handlers.NewMenuHandler(svc, log)
	pricingHandler := handlers.NewPricingHandler(svc, log)

	// Public QR menu endpoints
	r.Route("/menus/{businessID}", func(r chi.Router) {
		r.Get("/", menuHandler.GetMenu)
		r.Get("/qr", menuHandler.GetQRCode)
		r.Get("/products/{productID}/price", menuHandler.GetProductPrice)
	})

	r.Post("/pricing/quote", pricingHandler.Quote)

	// Admin endpoints
	r.Route("/admin", func(r chi.Router) {
		r.Post("/menus/{businessID}/cache/invalidate", menuHandler.InvalidateCache)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
