package catalog

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
)

// Dish sort keys offered by the dishes page.
const (
	SortRelevance = "relevance"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// Chef sort keys offered by the chefs page (plus SortRating, SortNewest).
const (
	SortExperience   = "experience"
	SortAlphabetical = "alphabetical"
)

// SortDishes returns a stably sorted copy of dishes. An empty key means
// relevance, which keeps the input order.
func SortDishes(dishes []model.Dish, key string) ([]model.Dish, error) {
	var less func(a, b model.Dish) int
	switch key {
	case "", SortRelevance:
		return dishes, nil
	case SortPriceLow:
		less = func(a, b model.Dish) int { return a.Metadata.Price.Cmp(b.Metadata.Price.Decimal) }
	case SortPriceHigh:
		less = func(a, b model.Dish) int { return b.Metadata.Price.Cmp(a.Metadata.Price.Decimal) }
	case SortRating:
		less = func(a, b model.Dish) int { return cmp.Compare(b.ChefRating(), a.ChefRating()) }
	case SortNewest:
		less = func(a, b model.Dish) int { return newer(a.Object, b.Object) }
	default:
		return nil, unknownSort(key)
	}
	out := slices.Clone(dishes)
	slices.SortStableFunc(out, less)
	return out, nil
}

// SortChefs returns a stably sorted copy of chefs. An empty key keeps the
// input order.
func SortChefs(chefs []model.Chef, key string) ([]model.Chef, error) {
	var less func(a, b model.Chef) int
	switch key {
	case "":
		return chefs, nil
	case SortRating:
		less = func(a, b model.Chef) int { return cmp.Compare(b.Metadata.Rating, a.Metadata.Rating) }
	case SortExperience:
		less = func(a, b model.Chef) int { return cmp.Compare(b.Metadata.ExperienceYears, a.Metadata.ExperienceYears) }
	case SortNewest:
		less = func(a, b model.Chef) int { return newer(a.Object, b.Object) }
	case SortAlphabetical:
		less = func(a, b model.Chef) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	default:
		return nil, unknownSort(key)
	}
	out := slices.Clone(chefs)
	slices.SortStableFunc(out, less)
	return out, nil
}

// newer orders objects by creation time, newest first. Objects without a
// creation time sort last.
func newer(a, b model.Object) int {
	return createdAt(b).Compare(createdAt(a))
}

func createdAt(o model.Object) time.Time {
	if o.CreatedAt == nil {
		return time.Time{}
	}
	return *o.CreatedAt
}

func unknownSort(key string) error {
	return cosmic.Invalid("sort", "unknown sort key "+strconv.Quote(key))
}
