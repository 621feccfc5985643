package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/service"
)

// ReviewCreator defines the service method needed by review handlers.
// Satisfied by *service.ReviewService.
type ReviewCreator interface {
	CreateReview(ctx context.Context, req service.CreateReviewRequest) (*model.Review, error)
}

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	svc    ReviewCreator
	logger *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(svc ReviewCreator, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers review endpoints on the given Chi router.
// Expected to be mounted at /api/reviews.
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
}

type createReviewRequest struct {
	CustomerID        string  `json:"customer_id"`
	ChefID            string  `json:"chef_id"`
	OrderID           string  `json:"order_id"`
	Rating            float64 `json:"rating"`
	FoodQualityRating float64 `json:"food_quality_rating"`
	PackagingRating   float64 `json:"packaging_rating"`
	DeliveryRating    float64 `json:"delivery_rating"`
	Comment           string  `json:"comment"`
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	review, err := h.svc.CreateReview(r.Context(), service.CreateReviewRequest{
		CustomerID:        req.CustomerID,
		ChefID:            req.ChefID,
		OrderID:           req.OrderID,
		Rating:            req.Rating,
		FoodQualityRating: req.FoodQualityRating,
		PackagingRating:   req.PackagingRating,
		DeliveryRating:    req.DeliveryRating,
		Comment:           req.Comment,
	})
	if err != nil {
		writeError(w, h.logger, "create review", err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, toReviewResponse(*review))
}
