// Package stats computes the storefront dashboard aggregates from
// already-fetched collections.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
)

// Input is the data a dashboard is computed from.
type Input struct {
	Orders    []model.Order
	Chefs     []model.Chef
	Customers []model.Customer
	Reviews   []model.Review
}

// Stats are the dashboard aggregates.
type Stats struct {
	TotalOrders    int             `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	ActiveChefs    int             `json:"activeChefs"`
	TotalCustomers int             `json:"totalCustomers"`
	AverageRating  float64         `json:"averageRating"`
	OrdersToday    int             `json:"ordersToday"`
}

// Zero returns the all-zero Stats shown when data could not be fetched.
func Zero() Stats {
	return Stats{TotalRevenue: decimal.Zero}
}

// Compute aggregates in. Orders placed on now's calendar date in loc count
// towards OrdersToday. A nil loc means UTC.
func Compute(in Input, now time.Time, loc *time.Location) Stats {
	if loc == nil {
		loc = time.UTC
	}
	today := now.In(loc).Format(time.DateOnly)

	s := Zero()
	s.TotalOrders = len(in.Orders)
	s.TotalCustomers = len(in.Customers)

	for _, o := range in.Orders {
		s.TotalRevenue = s.TotalRevenue.Add(o.Metadata.TotalAmount.Decimal)
		if orderDate(o.Metadata.OrderDate, loc) == today {
			s.OrdersToday++
		}
	}

	for _, c := range in.Chefs {
		if c.Active() {
			s.ActiveChefs++
		}
	}

	s.AverageRating = averageRating(in.Reviews)
	return s
}

// averageRating is the mean review rating rounded half away from zero to
// one decimal place, or 0 with no reviews.
func averageRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromFloat(r.Metadata.Rating))
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(reviews))))
	return avg.Round(1).InexactFloat64()
}

// orderDate returns the YYYY-MM-DD calendar date of an order timestamp in
// loc. Timestamps that do not parse as RFC 3339 fall back to their leading
// ten characters.
func orderDate(raw string, loc *time.Location) string {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc).Format(time.DateOnly)
	}
	if len(raw) >= len(time.DateOnly) {
		return raw[:len(time.DateOnly)]
	}
	return ""
}
