package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/config"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/handler"
	mw "github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/middleware"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/service"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/ws"
)

// Deps are the services and infrastructure the router wires into handlers.
type Deps struct {
	Catalog   *service.CatalogService
	Orders    *service.OrderService
	Reviews   *service.ReviewService
	Dashboard *service.DashboardService
	Hub       *ws.Hub
	Registry  *prometheus.Registry
	Logger    *zap.Logger
}

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, d Deps) (chi.Router, error) {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger(d.Logger))
	r.Use(mw.Metrics(d.Registry))
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{Registry: d.Registry}))

	// Chef order feed
	r.Get("/ws/chefs/{id}/orders", d.Hub.ServeWS)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300, // 5 minutes
		}))

		chefHandler := handler.NewChefHandler(d.Catalog, d.Reviews, d.Orders, d.Logger)
		r.Route("/chefs", chefHandler.RegisterRoutes)

		dishHandler := handler.NewDishHandler(d.Catalog, d.Logger)
		r.Route("/dishes", dishHandler.RegisterRoutes)

		orderHandler := handler.NewOrderHandler(d.Orders, d.Hub, d.Logger)
		r.Route("/orders", orderHandler.RegisterRoutes)
		r.Route("/customers", orderHandler.RegisterCustomerRoutes)

		reviewHandler := handler.NewReviewHandler(d.Reviews, d.Logger)
		r.Route("/reviews", reviewHandler.RegisterRoutes)

		dashboardHandler := handler.NewDashboardHandler(d.Dashboard, d.Logger)
		r.Route("/dashboard", dashboardHandler.RegisterRoutes)
	})

	// Storefront pages
	pageHandler, err := handler.NewPageHandler(d.Catalog, d.Reviews, d.Dashboard, d.Logger)
	if err != nil {
		return nil, err
	}
	pageHandler.RegisterRoutes(r)

	d.Logger.Debug("router initialized")
	return r, nil
}
