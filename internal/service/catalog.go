package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/catalog"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
)

const (
	featuredChefCount = 6
	popularDishCount  = 8
)

// HomeData is what the landing page shows.
type HomeData struct {
	FeaturedChefs []model.Chef
	PopularDishes []model.Dish
}

// CatalogService reads chefs and dishes from the content store.
type CatalogService struct {
	store  ContentStore
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store ContentStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// --- Chefs ---

// ListChefs returns every chef regardless of status.
func (s *CatalogService) ListChefs(ctx context.Context) ([]model.Chef, error) {
	chefs, err := findAll[model.Chef](ctx, s.store, cosmic.Query{
		Type:  enum.TypeChefs,
		Props: listProps,
		Depth: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("list chefs: %w", err)
	}
	return chefs, nil
}

// ListApprovedChefs returns chefs that are approved and available.
func (s *CatalogService) ListApprovedChefs(ctx context.Context) ([]model.Chef, error) {
	chefs, err := findAll[model.Chef](ctx, s.store, cosmic.Query{
		Type: enum.TypeChefs,
		Filters: map[string]any{
			"metadata.status":       string(enum.ChefStatusApproved),
			"metadata.availability": true,
		},
		Props: listProps,
		Depth: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("list approved chefs: %w", err)
	}
	return chefs, nil
}

// SearchChefs returns approved chefs matching c.
func (s *CatalogService) SearchChefs(ctx context.Context, c catalog.ChefCriteria) ([]model.Chef, error) {
	chefs, err := s.ListApprovedChefs(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FilterChefs(chefs, c), nil
}

// GetChefBySlug returns the chef with the given slug, or nil if there is
// none.
func (s *CatalogService) GetChefBySlug(ctx context.Context, slug string) (*model.Chef, error) {
	var chef model.Chef
	if err := s.store.FindOne(ctx, enum.TypeChefs, slug, 1, &chef); err != nil {
		if cosmic.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chef %q: %w", slug, err)
	}
	if chef.ID == "" {
		return nil, nil
	}
	return &chef, nil
}

// --- Dishes ---

// ListDishes returns every dish.
func (s *CatalogService) ListDishes(ctx context.Context) ([]model.Dish, error) {
	dishes, err := findAll[model.Dish](ctx, s.store, cosmic.Query{
		Type:  enum.TypeDishes,
		Props: listProps,
		Depth: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, nil
}

// ListAvailableDishes returns dishes currently on offer.
func (s *CatalogService) ListAvailableDishes(ctx context.Context) ([]model.Dish, error) {
	dishes, err := findAll[model.Dish](ctx, s.store, cosmic.Query{
		Type:    enum.TypeDishes,
		Filters: map[string]any{"metadata.availability": true},
		Props:   listProps,
		Depth:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("list available dishes: %w", err)
	}
	return dishes, nil
}

// ListDishesByChef returns the dishes of one chef.
func (s *CatalogService) ListDishesByChef(ctx context.Context, chefID string) ([]model.Dish, error) {
	dishes, err := findAll[model.Dish](ctx, s.store, cosmic.Query{
		Type:    enum.TypeDishes,
		Filters: map[string]any{"metadata.chef": chefID},
		Props:   listProps,
		Depth:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("list dishes for chef %s: %w", chefID, err)
	}
	return dishes, nil
}

// SearchDishes returns available dishes matching c. Availability, spice
// level and dietary tags narrow the store query; the full criteria are
// then applied in memory, since the store matches cuisine case-sensitively
// and treats a dietary list as "any of".
func (s *CatalogService) SearchDishes(ctx context.Context, c catalog.Criteria) ([]model.Dish, error) {
	filters := map[string]any{"metadata.availability": true}
	if c.SpiceLevel != "" {
		filters["metadata.spice_level"] = string(c.SpiceLevel)
	}
	if len(c.Dietary) > 0 {
		filters["metadata.dietary_preferences"] = cosmic.In(c.Dietary...)
	}

	dishes, err := findAll[model.Dish](ctx, s.store, cosmic.Query{
		Type:    enum.TypeDishes,
		Filters: filters,
		Props:   listProps,
		Depth:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("search dishes: %w", err)
	}
	matched := catalog.FilterDishes(dishes, c)
	s.logger.Debug("search dishes",
		zap.Int("fetched", len(dishes)),
		zap.Int("matched", len(matched)),
	)
	return matched, nil
}

// Home fetches approved chefs and available dishes concurrently and keeps
// the first few of each.
func (s *CatalogService) Home(ctx context.Context) (HomeData, error) {
	var chefs []model.Chef
	var dishes []model.Dish

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		chefs, err = s.ListApprovedChefs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		dishes, err = s.ListAvailableDishes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return HomeData{}, err
	}

	return HomeData{
		FeaturedChefs: chefs[:min(len(chefs), featuredChefCount)],
		PopularDishes: dishes[:min(len(dishes), popularDishCount)],
	}, nil
}
