package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/catalog"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/service"
)

// ChefCatalog defines the catalog methods needed by chef handlers.
// Satisfied by *service.CatalogService; narrow interface for testability.
type ChefCatalog interface {
	SearchChefs(ctx context.Context, c catalog.ChefCriteria) ([]model.Chef, error)
	GetChefBySlug(ctx context.Context, slug string) (*model.Chef, error)
	ListDishesByChef(ctx context.Context, chefID string) ([]model.Dish, error)
}

// ChefReviewLister lists a chef's reviews. Satisfied by *service.ReviewService.
type ChefReviewLister interface {
	ListReviewsByChef(ctx context.Context, chefID string) ([]model.Review, error)
}

// ChefOrderLister lists a chef's orders. Satisfied by *service.OrderService.
type ChefOrderLister interface {
	ListOrdersByChef(ctx context.Context, chefID string) ([]model.Order, error)
}

// ChefHandler handles chef endpoints.
type ChefHandler struct {
	catalog ChefCatalog
	reviews ChefReviewLister
	orders  ChefOrderLister
	logger  *zap.Logger
}

// NewChefHandler creates a new ChefHandler.
func NewChefHandler(catalog ChefCatalog, reviews ChefReviewLister, orders ChefOrderLister, logger *zap.Logger) *ChefHandler {
	return &ChefHandler{catalog: catalog, reviews: reviews, orders: orders, logger: logger}
}

// RegisterRoutes registers chef endpoints on the given Chi router.
// Expected to be mounted at /api/chefs.
func (h *ChefHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Route("/{slug}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Get("/dishes", h.Dishes)
		r.Get("/reviews", h.Reviews)
		r.Get("/orders", h.Orders)
	})
}

// List handles GET /api/chefs?cuisine=&rating=&sort=.
func (h *ChefHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := catalog.ParseChefCriteria(r.URL.Query())
	if err != nil {
		writeError(w, h.logger, "parse chef criteria", err)
		return
	}

	chefs, err := h.catalog.SearchChefs(r.Context(), criteria)
	if err != nil {
		writeError(w, h.logger, "search chefs", err)
		return
	}

	chefs, err = catalog.SortChefs(chefs, r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, h.logger, "sort chefs", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toChefResponses(chefs))
}

// Get handles GET /api/chefs/{slug}.
func (h *ChefHandler) Get(w http.ResponseWriter, r *http.Request) {
	chef, ok := h.resolveChef(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toChefResponse(*chef))
}

// Dishes handles GET /api/chefs/{slug}/dishes.
func (h *ChefHandler) Dishes(w http.ResponseWriter, r *http.Request) {
	chef, ok := h.resolveChef(w, r)
	if !ok {
		return
	}

	dishes, err := h.catalog.ListDishesByChef(r.Context(), chef.ID)
	if err != nil {
		writeError(w, h.logger, "list chef dishes", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toDishResponses(dishes))
}

// Reviews handles GET /api/chefs/{slug}/reviews.
func (h *ChefHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	chef, ok := h.resolveChef(w, r)
	if !ok {
		return
	}

	reviews, err := h.reviews.ListReviewsByChef(r.Context(), chef.ID)
	if err != nil {
		writeError(w, h.logger, "list chef reviews", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toReviewResponses(reviews))
}

// Orders handles GET /api/chefs/{slug}/orders.
func (h *ChefHandler) Orders(w http.ResponseWriter, r *http.Request) {
	chef, ok := h.resolveChef(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.ListOrdersByChef(r.Context(), chef.ID)
	if err != nil {
		writeError(w, h.logger, "list chef orders", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toOrderResponses(orders))
}

// resolveChef looks up the {slug} chef, writing the error response itself
// when it returns false.
func (h *ChefHandler) resolveChef(w http.ResponseWriter, r *http.Request) (*model.Chef, bool) {
	slug := chi.URLParam(r, "slug")
	chef, err := h.catalog.GetChefBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, h.logger, "get chef", err)
		return nil, false
	}
	if chef == nil {
		writeError(w, h.logger, "get chef", service.ErrChefNotFound)
		return nil, false
	}
	return chef, true
}
