package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
)

var fixedNow = time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)

func newTestOrderService(store *mockStore) *OrderService {
	svc := NewOrderService(store, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func validOrderRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerID: "cust-1",
		ChefID:     "chef-1",
		Dishes: []CreateOrderDishRequest{
			{DishID: "d1", Quantity: 2, Price: decimal.RequireFromString("249.50")},
			{DishID: "d2", Quantity: 1, Price: decimal.NewFromInt(120)},
		},
		DeliveryAddress: &model.Address{Street: "12 MG Road", City: "Pune", State: "MH", PostalCode: "411001"},
		DeliveryFee:     decimal.NewFromInt(30),
		DiscountAmount:  decimal.NewFromInt(19),
	}
}

// --- CreateOrder ---

func TestCreateOrder_Success(t *testing.T) {
	var sent map[string]any
	store := &mockStore{insertOneFn: func(objectType string, obj map[string]any) (string, error) {
		if objectType != enum.TypeOrders {
			t.Errorf("expected type orders, got %q", objectType)
		}
		sent = obj
		return `{"id":"o1","title":"Order x","metadata":{"status":"pending","total_amount":630,"chef":"chef-1"}}`, nil
	}}
	svc := newTestOrderService(store)

	order, err := svc.CreateOrder(context.Background(), validOrderRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "o1" {
		t.Errorf("expected order o1, got %q", order.ID)
	}

	if sent["type"] != "orders" {
		t.Errorf("expected type orders, got %v", sent["type"])
	}
	if title, _ := sent["title"].(string); !strings.HasPrefix(title, "Order ") || len(title) <= len("Order ") {
		t.Errorf("unexpected title %q", title)
	}

	meta := sent["metadata"].(map[string]any)
	if meta["status"] != "pending" {
		t.Errorf("expected pending, got %v", meta["status"])
	}
	if meta["payment_method"] != "card" {
		t.Errorf("expected default payment card, got %v", meta["payment_method"])
	}
	if meta["customer"] != "cust-1" || meta["chef"] != "chef-1" {
		t.Errorf("expected relation IDs, got customer=%v chef=%v", meta["customer"], meta["chef"])
	}
	// 2*249.50 + 120 + 30 - 19
	if meta["total_amount"] != 630.0 {
		t.Errorf("expected total 630, got %v", meta["total_amount"])
	}
	if meta["order_date"] != "2026-03-10T08:30:00.000Z" {
		t.Errorf("unexpected order_date %v", meta["order_date"])
	}
	tracking := meta["tracking_info"].(map[string]any)
	if tracking["order_placed"] != meta["order_date"] {
		t.Errorf("expected order_placed to equal order_date, got %v", tracking["order_placed"])
	}
	if _, ok := meta["tax_amount"]; ok {
		t.Error("zero tax must be omitted")
	}
	lines := meta["dishes"].([]any)
	if len(lines) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(lines))
	}
	first := lines[0].(map[string]any)
	if first["dish"] != "d1" || first["quantity"] != 2.0 || first["price"] != 249.5 {
		t.Errorf("unexpected first line %v", first)
	}
}

func TestCreateOrder_TotalFlooredAtZero(t *testing.T) {
	var sent map[string]any
	store := &mockStore{insertOneFn: func(_ string, obj map[string]any) (string, error) {
		sent = obj
		return `{"id":"o1"}`, nil
	}}
	svc := newTestOrderService(store)

	req := validOrderRequest()
	req.DiscountAmount = decimal.NewFromInt(5000)
	if _, err := svc.CreateOrder(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta := sent["metadata"].(map[string]any)
	if meta["total_amount"] != 0.0 {
		t.Errorf("expected total 0, got %v", meta["total_amount"])
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreateOrderRequest)
		want   error
	}{
		{"missing customer", func(r *CreateOrderRequest) { r.CustomerID = "" }, ErrCustomerRequired},
		{"missing chef", func(r *CreateOrderRequest) { r.ChefID = "" }, ErrChefRequired},
		{"no dishes", func(r *CreateOrderRequest) { r.Dishes = nil }, ErrEmptyDishes},
		{"no address", func(r *CreateOrderRequest) { r.DeliveryAddress = nil }, ErrAddressRequired},
		{"bad payment", func(r *CreateOrderRequest) { r.PaymentMethod = "barter" }, ErrInvalidPayment},
		{"negative fee", func(r *CreateOrderRequest) { r.DeliveryFee = decimal.NewFromInt(-1) }, ErrNegativeAdjustment},
		{"missing dish id", func(r *CreateOrderRequest) { r.Dishes[1].DishID = "" }, ErrDishRequired},
		{"zero quantity", func(r *CreateOrderRequest) { r.Dishes[0].Quantity = 0 }, ErrInvalidQuantity},
		{"negative price", func(r *CreateOrderRequest) { r.Dishes[0].Price = decimal.NewFromInt(-10) }, ErrInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{} // insertOneFn nil: must not be called
			svc := newTestOrderService(store)

			req := validOrderRequest()
			tt.mutate(&req)
			_, err := svc.CreateOrder(context.Background(), req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateOrder_StoreError(t *testing.T) {
	store := &mockStore{insertOneFn: func(string, map[string]any) (string, error) {
		return "", &cosmic.RetrievalError{Op: "insert_one", Type: "orders", StatusCode: 500, Err: errors.New("boom")}
	}}
	svc := newTestOrderService(store)

	_, err := svc.CreateOrder(context.Background(), validOrderRequest())
	var rerr *cosmic.RetrievalError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected RetrievalError, got %v", err)
	}
	if IsValidation(err) {
		t.Error("store failure must not be a validation error")
	}
}

// --- UpdateOrderStatus ---

func TestUpdateOrderStatus_StampsTracking(t *testing.T) {
	var patch map[string]any
	store := &mockStore{
		findFn: func(q cosmic.Query) (string, error) {
			if q.Filters["id"] != "o1" {
				t.Errorf("expected id filter o1, got %v", q.Filters)
			}
			return `[{"id":"o1","metadata":{"status":"pending","tracking_info":{"order_placed":"2026-03-10T08:00:00.000Z"}}}]`, nil
		},
		updateOneFn: func(id string, p map[string]any) (string, error) {
			patch = p
			return `{"id":"o1","metadata":{"status":"accepted","chef":"chef-1"}}`, nil
		},
	}
	svc := newTestOrderService(store)

	order, err := svc.UpdateOrderStatus(context.Background(), "o1", enum.OrderStatusAccepted, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Metadata.Status != enum.OrderStatusAccepted {
		t.Errorf("expected accepted, got %q", order.Metadata.Status)
	}

	meta := patch["metadata"].(map[string]any)
	if meta["status"] != "accepted" {
		t.Errorf("expected status accepted, got %v", meta["status"])
	}
	tracking := meta["tracking_info"].(map[string]any)
	if tracking["order_placed"] != "2026-03-10T08:00:00.000Z" {
		t.Errorf("expected stored order_placed kept, got %v", tracking["order_placed"])
	}
	if tracking["chef_accepted"] != "2026-03-10T08:30:00.000Z" {
		t.Errorf("expected chef_accepted stamped, got %v", tracking["chef_accepted"])
	}
}

func TestUpdateOrderStatus_ExplicitTrackingWins(t *testing.T) {
	var patch map[string]any
	store := &mockStore{
		findFn: func(cosmic.Query) (string, error) {
			return `[{"id":"o1","metadata":{"status":"ready"}}]`, nil
		},
		updateOneFn: func(_ string, p map[string]any) (string, error) {
			patch = p
			return `{"id":"o1","metadata":{"status":"delivered"}}`, nil
		},
	}
	svc := newTestOrderService(store)

	_, err := svc.UpdateOrderStatus(context.Background(), "o1", enum.OrderStatusDelivered,
		&model.TrackingInfo{Delivered: "2026-03-10T08:25:00.000Z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tracking := patch["metadata"].(map[string]any)["tracking_info"].(map[string]any)
	if tracking["delivered"] != "2026-03-10T08:25:00.000Z" {
		t.Errorf("expected explicit delivered time, got %v", tracking["delivered"])
	}
}

func TestUpdateOrderStatus_Errors(t *testing.T) {
	pending := func(cosmic.Query) (string, error) {
		return `[{"id":"o1","metadata":{"status":"delivered"}}]`, nil
	}

	t.Run("unknown status", func(t *testing.T) {
		svc := newTestOrderService(&mockStore{})
		_, err := svc.UpdateOrderStatus(context.Background(), "o1", "teleported", nil)
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		svc := newTestOrderService(&mockStore{})
		_, err := svc.UpdateOrderStatus(context.Background(), "", enum.OrderStatusAccepted, nil)
		if !errors.Is(err, ErrOrderRequired) {
			t.Fatalf("expected ErrOrderRequired, got %v", err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		svc := newTestOrderService(&mockStore{findFn: byType(nil)})
		_, err := svc.UpdateOrderStatus(context.Background(), "o404", enum.OrderStatusAccepted, nil)
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("final status", func(t *testing.T) {
		svc := newTestOrderService(&mockStore{findFn: pending})
		_, err := svc.UpdateOrderStatus(context.Background(), "o1", enum.OrderStatusCancelled, nil)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if !strings.Contains(err.Error(), "from delivered to cancelled") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})
}

func TestValidateStatusTransition(t *testing.T) {
	tests := []struct {
		from, to enum.OrderStatus
		ok       bool
	}{
		{enum.OrderStatusPending, enum.OrderStatusAccepted, true},
		{enum.OrderStatusPending, enum.OrderStatusCancelled, true},
		{enum.OrderStatusPending, enum.OrderStatusDelivered, false},
		{enum.OrderStatusAccepted, enum.OrderStatusPreparing, true},
		{enum.OrderStatusPreparing, enum.OrderStatusReady, true},
		{enum.OrderStatusReady, enum.OrderStatusDelivered, true},
		{enum.OrderStatusReady, enum.OrderStatusOutForDelivery, true},
		{enum.OrderStatusOutForDelivery, enum.OrderStatusDelivered, true},
		{enum.OrderStatusOutForDelivery, enum.OrderStatusCancelled, false},
		{enum.OrderStatusCancelled, enum.OrderStatusPending, false},
		{"", enum.OrderStatusAccepted, false},
	}
	for _, tt := range tests {
		err := validateStatusTransition(tt.from, tt.to)
		if (err == nil) != tt.ok {
			t.Errorf("%s -> %s: expected ok=%v, got %v", tt.from, tt.to, tt.ok, err)
		}
	}
}

// --- Listing ---

func TestListOrdersByChef_NewestFirst(t *testing.T) {
	store := &mockStore{findFn: func(q cosmic.Query) (string, error) {
		if q.Filters["metadata.chef"] != "chef-1" {
			t.Errorf("expected chef filter, got %v", q.Filters)
		}
		return `[
			{"id":"old","metadata":{"order_date":"2026-03-01T10:00:00.000Z"}},
			{"id":"bad","metadata":{"order_date":"not a date"}},
			{"id":"new","metadata":{"order_date":"2026-03-09T10:00:00.000Z"}}
		]`, nil
	}}
	svc := newTestOrderService(store)

	orders, err := svc.ListOrdersByChef(context.Background(), "chef-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := []string{orders[0].ID, orders[1].ID, orders[2].ID}
	want := []string{"new", "old", "bad"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestListOrdersByCustomer_NotFoundIsEmpty(t *testing.T) {
	svc := newTestOrderService(&mockStore{findFn: byType(nil)})

	orders, err := svc.ListOrdersByCustomer(context.Background(), "cust-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected no orders, got %d", len(orders))
	}
}
