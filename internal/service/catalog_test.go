package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/catalog"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
)

const dishesJSON = `[
	{"id":"d1","slug":"butter-chicken","metadata":{"cuisine_type":"Indian","price":250,"availability":true,"spice_level":"medium","dietary_preferences":["halal"],"chef":{"id":"c1","metadata":{"rating":4.8}}}},
	{"id":"d2","slug":"pad-thai","metadata":{"cuisine_type":"thai","price":"180","availability":true,"spice_level":"hot","dietary_preferences":["vegan","gluten_free"],"chef":"c2"}},
	{"id":"d3","slug":"paneer-tikka","metadata":{"cuisine_type":"indian","price":200,"availability":true,"spice_level":"hot","dietary_preferences":["vegetarian"],"chef":{"id":"c3","metadata":{"rating":4.5}}}}
]`

func TestListChefs_NotFoundIsEmpty(t *testing.T) {
	store := &mockStore{findFn: byType(nil)}
	svc := NewCatalogService(store, zap.NewNop())

	chefs, err := svc.ListChefs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chefs == nil || len(chefs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", chefs)
	}
}

func TestListApprovedChefs_QueriesStatusAndAvailability(t *testing.T) {
	store := &mockStore{findFn: byType(map[string]string{
		enum.TypeChefs: `[{"id":"c1","slug":"asha","metadata":{"status":"approved","availability":true}}]`,
	})}
	svc := NewCatalogService(store, zap.NewNop())

	chefs, err := svc.ListApprovedChefs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chefs) != 1 || chefs[0].Slug != "asha" {
		t.Fatalf("unexpected chefs: %#v", chefs)
	}

	q := store.queries[0]
	if q.Filters["metadata.status"] != "approved" {
		t.Errorf("expected status filter, got %v", q.Filters)
	}
	if q.Filters["metadata.availability"] != true {
		t.Errorf("expected availability filter, got %v", q.Filters)
	}
	if q.Depth != 1 {
		t.Errorf("expected depth 1, got %d", q.Depth)
	}
}

func TestListDishes_RetrievalErrorSurfaces(t *testing.T) {
	storeErr := &cosmic.RetrievalError{Op: "find", Type: "dishes", StatusCode: 503, Err: errors.New("down")}
	store := &mockStore{findFn: func(cosmic.Query) (string, error) { return "", storeErr }}
	svc := NewCatalogService(store, zap.NewNop())

	_, err := svc.ListDishes(context.Background())
	var rerr *cosmic.RetrievalError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RetrievalError, got %v", err)
	}
	if !strings.Contains(err.Error(), "list dishes") {
		t.Errorf("expected wrapped context, got %q", err.Error())
	}
}

func TestGetChefBySlug(t *testing.T) {
	store := &mockStore{findOneFn: func(objectType, slug string) (string, error) {
		if objectType != enum.TypeChefs {
			t.Errorf("unexpected type %q", objectType)
		}
		if slug == "asha" {
			return `{"id":"c1","slug":"asha","title":"Asha","metadata":{"rating":4.9}}`, nil
		}
		return "", cosmic.ErrNotFound
	}}
	svc := NewCatalogService(store, zap.NewNop())

	chef, err := svc.GetChefBySlug(context.Background(), "asha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chef == nil || chef.ID != "c1" {
		t.Fatalf("unexpected chef: %#v", chef)
	}

	chef, err = svc.GetChefBySlug(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chef != nil {
		t.Fatalf("expected nil chef, got %#v", chef)
	}
}

func TestListDishesByChef_FiltersOnChef(t *testing.T) {
	store := &mockStore{findFn: byType(map[string]string{enum.TypeDishes: dishesJSON})}
	svc := NewCatalogService(store, zap.NewNop())

	if _, err := svc.ListDishesByChef(context.Background(), "c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.queries[0].Filters["metadata.chef"]; got != "c1" {
		t.Errorf("expected chef filter c1, got %v", got)
	}
}

func TestSearchDishes(t *testing.T) {
	store := &mockStore{findFn: byType(map[string]string{enum.TypeDishes: dishesJSON})}
	svc := NewCatalogService(store, zap.NewNop())

	threshold := 4.6
	dishes, err := svc.SearchDishes(context.Background(), catalog.Criteria{
		Cuisine:       "INDIAN",
		MinChefRating: &threshold,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dishes) != 1 || dishes[0].ID != "d1" {
		t.Fatalf("expected only d1, got %#v", dishes)
	}

	q := store.queries[0]
	if _, ok := q.Filters["metadata.cuisine_type"]; ok {
		t.Error("cuisine must not be pushed to the store")
	}
	if q.Filters["metadata.availability"] != true {
		t.Errorf("expected availability filter, got %v", q.Filters)
	}
}

func TestSearchDishes_PushesSpiceAndDietary(t *testing.T) {
	store := &mockStore{findFn: byType(map[string]string{enum.TypeDishes: dishesJSON})}
	svc := NewCatalogService(store, zap.NewNop())

	dishes, err := svc.SearchDishes(context.Background(), catalog.Criteria{
		SpiceLevel: enum.SpiceHot,
		Dietary:    []enum.DietaryPreference{enum.DietaryVegan, enum.DietaryGlutenFree},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The mock ignores filters, so the in-memory pass does the narrowing.
	if len(dishes) != 1 || dishes[0].ID != "d2" {
		t.Fatalf("expected only d2, got %#v", dishes)
	}

	q := store.queries[0]
	if q.Filters["metadata.spice_level"] != "hot" {
		t.Errorf("expected spice filter, got %v", q.Filters)
	}
	in, ok := q.Filters["metadata.dietary_preferences"].(map[string]any)
	if !ok {
		t.Fatalf("expected dietary $in filter, got %v", q.Filters)
	}
	if got := fmt.Sprint(in["$in"]); got != "[vegan gluten_free]" {
		t.Errorf("unexpected $in values: %s", got)
	}
}

func TestHome_TruncatesLists(t *testing.T) {
	var chefs, dishes []string
	for i := range 10 {
		chefs = append(chefs, fmt.Sprintf(`{"id":"c%d","metadata":{"status":"approved","availability":true}}`, i))
		dishes = append(dishes, fmt.Sprintf(`{"id":"d%d","metadata":{"price":100,"availability":true}}`, i))
	}
	store := &mockStore{findFn: byType(map[string]string{
		enum.TypeChefs:  "[" + strings.Join(chefs, ",") + "]",
		enum.TypeDishes: "[" + strings.Join(dishes, ",") + "]",
	})}
	svc := NewCatalogService(store, zap.NewNop())

	home, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(home.FeaturedChefs) != 6 {
		t.Errorf("expected 6 featured chefs, got %d", len(home.FeaturedChefs))
	}
	if len(home.PopularDishes) != 8 {
		t.Errorf("expected 8 popular dishes, got %d", len(home.PopularDishes))
	}
	if home.FeaturedChefs[0].ID != "c0" || home.PopularDishes[7].ID != "d7" {
		t.Error("expected input order to be kept")
	}
}

func TestHome_EmptyStore(t *testing.T) {
	svc := NewCatalogService(&mockStore{findFn: byType(nil)}, zap.NewNop())

	home, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(home.FeaturedChefs) != 0 || len(home.PopularDishes) != 0 {
		t.Fatalf("expected empty home data, got %#v", home)
	}
}

func TestHome_FailurePropagates(t *testing.T) {
	store := &mockStore{findFn: func(q cosmic.Query) (string, error) {
		if q.Type == enum.TypeDishes {
			return "", &cosmic.RetrievalError{Op: "find", Type: q.Type, Err: errors.New("timeout")}
		}
		return `[]`, nil
	}}
	svc := NewCatalogService(store, zap.NewNop())

	if _, err := svc.Home(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
