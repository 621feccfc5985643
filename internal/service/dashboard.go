package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/stats"
)

// DashboardService computes dashboard stats from the four collections.
type DashboardService struct {
	store  ContentStore
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

// NewDashboardService creates a DashboardService that counts "today" in loc.
func NewDashboardService(store ContentStore, logger *zap.Logger, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{store: store, logger: logger, loc: loc, now: time.Now}
}

// Stats fetches orders, chefs, customers and reviews concurrently and
// aggregates them. Any fetch failure yields stats.Zero(); the failure is
// logged, never returned.
func (s *DashboardService) Stats(ctx context.Context) stats.Stats {
	in, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("dashboard stats unavailable", zap.Error(err))
		return stats.Zero()
	}
	return stats.Compute(in, s.now(), s.loc)
}

func (s *DashboardService) fetch(ctx context.Context) (stats.Input, error) {
	var in stats.Input
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		in.Orders, err = findAll[model.Order](gctx, s.store, cosmic.Query{
			Type: enum.TypeOrders, Props: []string{"id", "metadata"},
		})
		return wrapCollection(enum.TypeOrders, err)
	})
	g.Go(func() (err error) {
		in.Chefs, err = findAll[model.Chef](gctx, s.store, cosmic.Query{
			Type: enum.TypeChefs, Props: []string{"id", "metadata"},
		})
		return wrapCollection(enum.TypeChefs, err)
	})
	g.Go(func() (err error) {
		in.Customers, err = findAll[model.Customer](gctx, s.store, cosmic.Query{
			Type: enum.TypeCustomers, Props: []string{"id"},
		})
		return wrapCollection(enum.TypeCustomers, err)
	})
	g.Go(func() (err error) {
		in.Reviews, err = findAll[model.Review](gctx, s.store, cosmic.Query{
			Type: enum.TypeReviews, Props: []string{"id", "metadata"},
		})
		return wrapCollection(enum.TypeReviews, err)
	})

	if err := g.Wait(); err != nil {
		return stats.Input{}, err
	}
	return in, nil
}

func wrapCollection(objectType string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("fetch %s: %w", objectType, err)
}
