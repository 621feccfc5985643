// Package catalog filters and orders already-fetched chefs and dishes
// according to storefront query parameters.
package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
)

const maxRating = 5

// PriceRange is an inclusive price bound. An invalid Max means no maximum.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.NullDecimal
}

// Contains reports whether price lies within the range, bounds included.
func (p PriceRange) Contains(price decimal.Decimal) bool {
	if price.LessThan(p.Min) {
		return false
	}
	if p.Max.Valid && price.GreaterThan(p.Max.Decimal) {
		return false
	}
	return true
}

// Criteria narrows a dish list. Zero-valued fields impose no constraint.
type Criteria struct {
	Cuisine       string
	PriceRange    *PriceRange
	Dietary       []enum.DietaryPreference
	SpiceLevel    enum.SpiceLevel
	MinChefRating *float64
}

// IsEmpty reports whether no field is set.
func (c Criteria) IsEmpty() bool {
	return c.Cuisine == "" && c.PriceRange == nil && len(c.Dietary) == 0 &&
		c.SpiceLevel == "" && c.MinChefRating == nil
}

// ChefCriteria narrows a chef list. Zero-valued fields impose no constraint.
type ChefCriteria struct {
	Cuisine   string
	MinRating *float64
}

func (c ChefCriteria) IsEmpty() bool {
	return c.Cuisine == "" && c.MinRating == nil
}

// ParseCriteria reads dish criteria from storefront query parameters:
//
//	cuisine=indian
//	price=200-400 | price=1000+
//	dietary=vegan (repeatable, or comma-separated)
//	spice=hot
//	rating=4.5
//
// Malformed values are rejected with a *cosmic.ValidationError.
func ParseCriteria(q url.Values) (Criteria, error) {
	var c Criteria

	c.Cuisine = strings.TrimSpace(q.Get("cuisine"))

	if raw := strings.TrimSpace(q.Get("price")); raw != "" {
		pr, err := ParsePriceRange(raw)
		if err != nil {
			return Criteria{}, err
		}
		c.PriceRange = &pr
	}

	for _, v := range q["dietary"] {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			tag := enum.DietaryPreference(strings.ToLower(part))
			if !tag.Valid() {
				return Criteria{}, cosmic.Invalid("dietary", "unknown dietary preference "+strconv.Quote(part))
			}
			c.Dietary = appendUnique(c.Dietary, tag)
		}
	}

	if raw := strings.TrimSpace(q.Get("spice")); raw != "" {
		level := enum.SpiceLevel(strings.ToLower(raw))
		if !level.Valid() {
			return Criteria{}, cosmic.Invalid("spice", "unknown spice level "+strconv.Quote(raw))
		}
		c.SpiceLevel = level
	}

	if raw := strings.TrimSpace(q.Get("rating")); raw != "" {
		r, err := parseRating("rating", raw)
		if err != nil {
			return Criteria{}, err
		}
		c.MinChefRating = &r
	}

	return c, nil
}

// ParseChefCriteria reads chef criteria (cuisine, rating) from query
// parameters.
func ParseChefCriteria(q url.Values) (ChefCriteria, error) {
	var c ChefCriteria
	c.Cuisine = strings.TrimSpace(q.Get("cuisine"))
	if raw := strings.TrimSpace(q.Get("rating")); raw != "" {
		r, err := parseRating("rating", raw)
		if err != nil {
			return ChefCriteria{}, err
		}
		c.MinRating = &r
	}
	return c, nil
}

// ParsePriceRange parses "min-max" or "min+" (no maximum).
func ParsePriceRange(raw string) (PriceRange, error) {
	if strings.HasSuffix(raw, "+") {
		min, err := parsePrice(strings.TrimSuffix(raw, "+"))
		if err != nil {
			return PriceRange{}, err
		}
		return PriceRange{Min: min}, nil
	}

	lo, hi, ok := strings.Cut(raw, "-")
	if !ok {
		return PriceRange{}, cosmic.Invalid("price", `expected "min-max" or "min+"`)
	}
	min, err := parsePrice(lo)
	if err != nil {
		return PriceRange{}, err
	}
	max, err := parsePrice(hi)
	if err != nil {
		return PriceRange{}, err
	}
	if max.LessThan(min) {
		return PriceRange{}, cosmic.Invalid("price", "maximum is below minimum")
	}
	return PriceRange{Min: min, Max: decimal.NewNullDecimal(max)}, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, cosmic.Invalid("price", "missing bound")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, cosmic.Invalid("price", strconv.Quote(s)+" is not a number")
	}
	if d.IsNegative() {
		return decimal.Decimal{}, cosmic.Invalid("price", "bounds must be >= 0")
	}
	return d, nil
}

func parseRating(field, s string) (float64, error) {
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, cosmic.Invalid(field, strconv.Quote(s)+" is not a number")
	}
	if r < 0 || r > maxRating {
		return 0, cosmic.Invalid(field, "must be between 0 and 5")
	}
	return r, nil
}

func appendUnique(tags []enum.DietaryPreference, tag enum.DietaryPreference) []enum.DietaryPreference {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
