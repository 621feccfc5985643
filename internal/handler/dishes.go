package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/catalog"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
)

// DishSearcher defines the catalog method needed by dish handlers.
// Satisfied by *service.CatalogService.
type DishSearcher interface {
	SearchDishes(ctx context.Context, c catalog.Criteria) ([]model.Dish, error)
}

// DishHandler handles dish endpoints.
type DishHandler struct {
	catalog DishSearcher
	logger  *zap.Logger
}

// NewDishHandler creates a new DishHandler.
func NewDishHandler(catalog DishSearcher, logger *zap.Logger) *DishHandler {
	return &DishHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers dish endpoints on the given Chi router.
// Expected to be mounted at /api/dishes.
func (h *DishHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// List handles GET /api/dishes?cuisine=&price=&dietary=&spice=&rating=&sort=.
func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := catalog.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, h.logger, "parse dish criteria", err)
		return
	}

	dishes, err := h.catalog.SearchDishes(r.Context(), criteria)
	if err != nil {
		writeError(w, h.logger, "search dishes", err)
		return
	}

	dishes, err = catalog.SortDishes(dishes, r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, h.logger, "sort dishes", err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, toDishResponses(dishes))
}
