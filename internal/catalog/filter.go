package catalog

import (
	"strings"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
)

// FilterDishes returns the dishes satisfying every set field of c, in
// input order. Empty criteria return dishes itself. The input slice is
// never modified.
func FilterDishes(dishes []model.Dish, c Criteria) []model.Dish {
	if c.IsEmpty() {
		return dishes
	}
	out := make([]model.Dish, 0, len(dishes))
	for _, d := range dishes {
		if c.Match(d) {
			out = append(out, d)
		}
	}
	return out
}

// Match reports whether a single dish satisfies c.
func (c Criteria) Match(d model.Dish) bool {
	if c.Cuisine != "" && !strings.EqualFold(d.Metadata.CuisineType, c.Cuisine) {
		return false
	}
	if c.PriceRange != nil && !c.PriceRange.Contains(d.Metadata.Price.Decimal) {
		return false
	}
	for _, tag := range c.Dietary {
		if !d.HasDietary(tag) {
			return false
		}
	}
	if c.SpiceLevel != "" && d.Metadata.SpiceLevel != c.SpiceLevel {
		return false
	}
	if c.MinChefRating != nil && d.ChefRating() < *c.MinChefRating {
		return false
	}
	return true
}

// FilterChefs returns the chefs satisfying c, in input order.
func FilterChefs(chefs []model.Chef, c ChefCriteria) []model.Chef {
	if c.IsEmpty() {
		return chefs
	}
	out := make([]model.Chef, 0, len(chefs))
	for _, ch := range chefs {
		if c.Match(ch) {
			out = append(out, ch)
		}
	}
	return out
}

// Match reports whether a single chef satisfies c. Cuisine matches any of
// the chef's cuisines or specialties, ignoring case.
func (c ChefCriteria) Match(ch model.Chef) bool {
	if c.Cuisine != "" && !containsFold(ch.Metadata.Cuisines, c.Cuisine) &&
		!containsFold(ch.Metadata.Specialties, c.Cuisine) {
		return false
	}
	if c.MinRating != nil && ch.Metadata.Rating < *c.MinRating {
		return false
	}
	return true
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
