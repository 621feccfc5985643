package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
)

// CreateReviewRequest is the input for reviewing an order. Zero
// sub-ratings default to Rating.
type CreateReviewRequest struct {
	CustomerID        string
	ChefID            string
	OrderID           string
	Rating            float64
	FoodQualityRating float64
	PackagingRating   float64
	DeliveryRating    float64
	Comment           string
}

// ReviewService stores and lists reviews.
type ReviewService struct {
	store  ContentStore
	logger *zap.Logger
	now    func() time.Time
}

// NewReviewService creates a new ReviewService.
func NewReviewService(store ContentStore, logger *zap.Logger) *ReviewService {
	return &ReviewService{store: store, logger: logger, now: time.Now}
}

// CreateReview validates and stores a review.
func (s *ReviewService) CreateReview(ctx context.Context, req CreateReviewRequest) (*model.Review, error) {
	if req.CustomerID == "" {
		return nil, ErrCustomerRequired
	}
	if req.ChefID == "" {
		return nil, ErrChefRequired
	}
	if req.OrderID == "" {
		return nil, ErrOrderRequired
	}
	if !validRating(req.Rating) {
		return nil, ErrInvalidRating
	}

	food := defaultRating(req.FoodQualityRating, req.Rating)
	packaging := defaultRating(req.PackagingRating, req.Rating)
	delivery := defaultRating(req.DeliveryRating, req.Rating)
	if !validRating(food) || !validRating(packaging) || !validRating(delivery) {
		return nil, ErrInvalidSubRating
	}

	meta := model.ReviewMetadata{
		Customer:          model.RefTo[model.Customer](req.CustomerID),
		Chef:              model.RefTo[model.Chef](req.ChefID),
		Order:             model.RefTo[model.Order](req.OrderID),
		Rating:            req.Rating,
		FoodQualityRating: food,
		PackagingRating:   packaging,
		DeliveryRating:    delivery,
		Comment:           req.Comment,
		ReviewDate:        model.Timestamp(s.now()),
		HelpfulCount:      0,
	}

	var review model.Review
	err := s.store.InsertOne(ctx, enum.TypeReviews, map[string]any{
		"type":     enum.TypeReviews,
		"title":    "Review for Order " + req.OrderID,
		"metadata": meta,
	}, &review)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.Info("review created",
		zap.String("review_id", review.ID),
		zap.String("chef_id", req.ChefID),
		zap.Float64("rating", req.Rating),
	)
	return &review, nil
}

// ListReviewsByChef returns a chef's reviews, newest first.
func (s *ReviewService) ListReviewsByChef(ctx context.Context, chefID string) ([]model.Review, error) {
	reviews, err := findAll[model.Review](ctx, s.store, cosmic.Query{
		Type:    enum.TypeReviews,
		Filters: map[string]any{"metadata.chef": chefID},
		Props:   listProps,
		Depth:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("list reviews for chef %s: %w", chefID, err)
	}
	slices.SortStableFunc(reviews, func(a, b model.Review) int {
		return parseTime(b.Metadata.ReviewDate).Compare(parseTime(a.Metadata.ReviewDate))
	})
	return reviews, nil
}

func validRating(r float64) bool {
	return r >= 1 && r <= 5
}

func defaultRating(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
