package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/stats"
)

// DashboardServicer computes dashboard stats. Satisfied by
// *service.DashboardService. It never fails; unavailable data yields zeros.
type DashboardServicer interface {
	Stats(ctx context.Context) stats.Stats
}

// DashboardHandler handles dashboard endpoints.
type DashboardHandler struct {
	svc    DashboardServicer
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc DashboardServicer, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers dashboard endpoints on the given Chi router.
// Expected to be mounted at /api/dashboard.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.Stats)
}

type statsResponse struct {
	TotalOrders    int     `json:"totalOrders"`
	TotalRevenue   string  `json:"totalRevenue"`
	ActiveChefs    int     `json:"activeChefs"`
	TotalCustomers int     `json:"totalCustomers"`
	AverageRating  float64 `json:"averageRating"`
	OrdersToday    int     `json:"ordersToday"`
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s := h.svc.Stats(r.Context())
	writeJSON(w, h.logger, http.StatusOK, statsResponse{
		TotalOrders:    s.TotalOrders,
		TotalRevenue:   s.TotalRevenue.StringFixed(2),
		ActiveChefs:    s.ActiveChefs,
		TotalCustomers: s.TotalCustomers,
		AverageRating:  s.AverageRating,
		OrdersToday:    s.OrdersToday,
	})
}
