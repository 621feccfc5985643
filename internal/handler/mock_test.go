package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/catalog"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/service"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/stats"
)

// --- Mock catalog ---

type mockCatalog struct {
	homeFn             func(ctx context.Context) (service.HomeData, error)
	searchChefsFn      func(ctx context.Context, c catalog.ChefCriteria) ([]model.Chef, error)
	getChefBySlugFn    func(ctx context.Context, slug string) (*model.Chef, error)
	listDishesByChefFn func(ctx context.Context, chefID string) ([]model.Dish, error)
	searchDishesFn     func(ctx context.Context, c catalog.Criteria) ([]model.Dish, error)
}

func (m *mockCatalog) Home(ctx context.Context) (service.HomeData, error) {
	if m.homeFn != nil {
		return m.homeFn(ctx)
	}
	return service.HomeData{}, nil
}

func (m *mockCatalog) SearchChefs(ctx context.Context, c catalog.ChefCriteria) ([]model.Chef, error) {
	if m.searchChefsFn != nil {
		return m.searchChefsFn(ctx, c)
	}
	return []model.Chef{}, nil
}

func (m *mockCatalog) GetChefBySlug(ctx context.Context, slug string) (*model.Chef, error) {
	if m.getChefBySlugFn != nil {
		return m.getChefBySlugFn(ctx, slug)
	}
	return nil, nil
}

func (m *mockCatalog) ListDishesByChef(ctx context.Context, chefID string) ([]model.Dish, error) {
	if m.listDishesByChefFn != nil {
		return m.listDishesByChefFn(ctx, chefID)
	}
	return []model.Dish{}, nil
}

func (m *mockCatalog) SearchDishes(ctx context.Context, c catalog.Criteria) ([]model.Dish, error) {
	if m.searchDishesFn != nil {
		return m.searchDishesFn(ctx, c)
	}
	return []model.Dish{}, nil
}

// --- Mock order service ---

type mockOrderService struct {
	createFn         func(ctx context.Context, req service.CreateOrderRequest) (*model.Order, error)
	updateStatusFn   func(ctx context.Context, id string, status enum.OrderStatus, tracking *model.TrackingInfo) (*model.Order, error)
	listByCustomerFn func(ctx context.Context, customerID string) ([]model.Order, error)
	listByChefFn     func(ctx context.Context, chefID string) ([]model.Order, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*model.Order, error) {
	return m.createFn(ctx, req)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, id string, status enum.OrderStatus, tracking *model.TrackingInfo) (*model.Order, error) {
	return m.updateStatusFn(ctx, id, status, tracking)
}

func (m *mockOrderService) ListOrdersByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	if m.listByCustomerFn != nil {
		return m.listByCustomerFn(ctx, customerID)
	}
	return []model.Order{}, nil
}

func (m *mockOrderService) ListOrdersByChef(ctx context.Context, chefID string) ([]model.Order, error) {
	if m.listByChefFn != nil {
		return m.listByChefFn(ctx, chefID)
	}
	return []model.Order{}, nil
}

// --- Mock review service ---

type mockReviewService struct {
	createFn     func(ctx context.Context, req service.CreateReviewRequest) (*model.Review, error)
	listByChefFn func(ctx context.Context, chefID string) ([]model.Review, error)
}

func (m *mockReviewService) CreateReview(ctx context.Context, req service.CreateReviewRequest) (*model.Review, error) {
	return m.createFn(ctx, req)
}

func (m *mockReviewService) ListReviewsByChef(ctx context.Context, chefID string) ([]model.Review, error) {
	if m.listByChefFn != nil {
		return m.listByChefFn(ctx, chefID)
	}
	return []model.Review{}, nil
}

// --- Mock dashboard ---

type mockDashboard struct {
	stats stats.Stats
}

func (m *mockDashboard) Stats(ctx context.Context) stats.Stats {
	return m.stats
}

// --- Mock broadcaster ---

type published struct {
	ChefID    string
	EventType string
	Payload   map[string]interface{}
}

type mockBroadcaster struct {
	mu     sync.Mutex
	events []published
}

func (m *mockBroadcaster) PublishJSON(chefID, eventType string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, published{ChefID: chefID, EventType: eventType, Payload: decoded})
	return nil
}

func (m *mockBroadcaster) all() []published {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]published(nil), m.events...)
}

// --- Test helpers ---

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeObject(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// --- Test data ---

func testChef(id, slug string, rating float64) model.Chef {
	created := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	return model.Chef{
		Object: model.Object{ID: id, Slug: slug, Title: "Chef " + slug, Type: enum.TypeChefs, CreatedAt: &created},
		Metadata: model.ChefMetadata{
			Rating:          rating,
			Cuisines:        []string{"North Indian"},
			Specialties:     []string{"Biryani"},
			ExperienceYears: 8,
			Status:          enum.ChefStatusApproved,
			Availability:    true,
		},
	}
}

func testDish(id, price string, chef *model.Chef) model.Dish {
	p, err := model.NewMoney(price)
	if err != nil {
		panic(err)
	}
	d := model.Dish{
		Object: model.Object{ID: id, Slug: id, Title: "Dish " + id, Type: enum.TypeDishes},
		Metadata: model.DishMetadata{
			Price:              p,
			CuisineType:        "North Indian",
			DietaryPreferences: []enum.DietaryPreference{enum.DietaryVegetarian},
			SpiceLevel:         enum.SpiceMedium,
			Availability:       true,
		},
	}
	if chef != nil {
		d.Metadata.Chef = model.Ref[model.Chef]{ID: chef.ID, Object: chef}
	}
	return d
}

func testOrder(id, chefID string, status enum.OrderStatus) *model.Order {
	total := model.MoneyFromInt(500)
	fee := model.MoneyFromInt(40)
	return &model.Order{
		Object: model.Object{ID: id, Title: "Order " + id, Type: enum.TypeOrders},
		Metadata: model.OrderMetadata{
			Customer: model.RefTo[model.Customer]("cust-1"),
			Chef:     model.RefTo[model.Chef](chefID),
			Dishes: []model.OrderDish{
				{Dish: model.RefTo[model.Dish]("dish-1"), Quantity: 2, Price: model.MoneyFromInt(230)},
			},
			Status:        status,
			TotalAmount:   total,
			DeliveryFee:   &fee,
			PaymentMethod: enum.PaymentMethodUPI,
			OrderDate:     "2026-03-10T08:30:00.000Z",
		},
	}
}
