package handler_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/handler"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/stats"
)

func TestDashboardStats(t *testing.T) {
	h := handler.NewDashboardHandler(&mockDashboard{stats: stats.Stats{
		TotalOrders:    12,
		TotalRevenue:   decimal.RequireFromString("5421.5"),
		ActiveChefs:    3,
		TotalCustomers: 40,
		AverageRating:  4.3,
		OrdersToday:    2,
	}}, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/api/dashboard", h.RegisterRoutes)

	rr := doRequest(t, r, "GET", "/api/dashboard/stats", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	resp := decodeObject(t, rr)
	want := map[string]interface{}{
		"totalOrders":    float64(12),
		"totalRevenue":   "5421.50",
		"activeChefs":    float64(3),
		"totalCustomers": float64(40),
		"averageRating":  4.3,
		"ordersToday":    float64(2),
	}
	for k, v := range want {
		if resp[k] != v {
			t.Errorf("%s: got %v (%T), want %v", k, resp[k], resp[k], v)
		}
	}
}

func TestDashboardStats_Zero(t *testing.T) {
	h := handler.NewDashboardHandler(&mockDashboard{stats: stats.Zero()}, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/api/dashboard", h.RegisterRoutes)

	rr := doRequest(t, r, "GET", "/api/dashboard/stats", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	resp := decodeObject(t, rr)
	if resp["totalRevenue"] != "0.00" || resp["totalOrders"] != float64(0) {
		t.Errorf("expected zero stats, got %v", resp)
	}
}
