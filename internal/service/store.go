package service

import (
	"context"
	"errors"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
)

// ContentStore defines the content-store methods the services need.
// Satisfied by *cosmic.Client; narrow interface for testability.
type ContentStore interface {
	Find(ctx context.Context, q cosmic.Query, out any) error
	FindOne(ctx context.Context, objectType, slug string, depth int, out any) error
	InsertOne(ctx context.Context, objectType string, obj any, out any) error
	UpdateOne(ctx context.Context, id string, patch any, out any) error
}

// Errors returned by the services for rejected input.
var (
	ErrCustomerRequired   = errors.New("customer is required")
	ErrChefRequired       = errors.New("chef is required")
	ErrOrderRequired      = errors.New("order is required")
	ErrEmptyDishes        = errors.New("dishes are required")
	ErrDishRequired       = errors.New("dish is required")
	ErrInvalidQuantity    = errors.New("quantity must be > 0")
	ErrInvalidPrice       = errors.New("price must be >= 0")
	ErrAddressRequired    = errors.New("delivery_address is required")
	ErrInvalidPayment     = errors.New("invalid payment_method")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidSubRating   = errors.New("sub-ratings must be between 1 and 5")
	ErrOrderNotFound      = errors.New("order not found")
	ErrChefNotFound       = errors.New("chef not found")
	ErrNegativeAdjustment = errors.New("fees and discounts must be >= 0")
)

// IsValidation reports whether err is a rejected-input error, from the
// services or from the content store.
func IsValidation(err error) bool {
	var verr *cosmic.ValidationError
	if errors.As(err, &verr) {
		return true
	}
	for _, target := range []error{
		ErrCustomerRequired, ErrChefRequired, ErrOrderRequired, ErrEmptyDishes,
		ErrDishRequired, ErrInvalidQuantity, ErrInvalidPrice, ErrAddressRequired,
		ErrInvalidPayment, ErrInvalidStatus, ErrInvalidRating, ErrInvalidSubRating,
		ErrNegativeAdjustment,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// listProps are the envelope fields fetched for list queries.
var listProps = []string{"id", "title", "slug", "type", "created_at", "metadata"}

// findAll runs q and decodes the matches. A not-found result is an empty
// slice, never an error.
func findAll[T any](ctx context.Context, store ContentStore, q cosmic.Query) ([]T, error) {
	var out []T
	if err := store.Find(ctx, q, &out); err != nil {
		if cosmic.IsNotFound(err) {
			return []T{}, nil
		}
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// findByID fetches the single object of objectType with the given ID.
func findByID[T any](ctx context.Context, store ContentStore, objectType, id string) (*T, error) {
	items, err := findAll[T](ctx, store, cosmic.Query{
		Type:    objectType,
		Filters: map[string]any{"id": id},
		Props:   listProps,
		Depth:   1,
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}
