package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
)

// CreateOrderRequest is the input for placing an order.
type CreateOrderRequest struct {
	CustomerID          string
	ChefID              string
	Dishes              []CreateOrderDishRequest
	DeliveryAddress     *model.Address
	PaymentMethod       enum.PaymentMethod
	SpecialInstructions string
	DeliveryTime        string
	DeliveryFee         decimal.Decimal
	TaxAmount           decimal.Decimal
	DiscountAmount      decimal.Decimal
}

// CreateOrderDishRequest is a single line item.
type CreateOrderDishRequest struct {
	DishID         string
	Quantity       int
	Price          decimal.Decimal
	Customizations *model.Customizations
}

// allowedTransitions lists the statuses an order may move to from each
// status. Delivered and cancelled orders are final.
var allowedTransitions = map[enum.OrderStatus][]enum.OrderStatus{
	enum.OrderStatusPending:        {enum.OrderStatusAccepted, enum.OrderStatusCancelled},
	enum.OrderStatusAccepted:       {enum.OrderStatusPreparing, enum.OrderStatusCancelled},
	enum.OrderStatusPreparing:      {enum.OrderStatusReady, enum.OrderStatusCancelled},
	enum.OrderStatusReady:          {enum.OrderStatusOutForDelivery, enum.OrderStatusDelivered, enum.OrderStatusCancelled},
	enum.OrderStatusOutForDelivery: {enum.OrderStatusDelivered},
}

// OrderService places orders and moves them through their lifecycle.
type OrderService struct {
	store  ContentStore
	logger *zap.Logger
	now    func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(store ContentStore, logger *zap.Logger) *OrderService {
	return &OrderService{store: store, logger: logger, now: time.Now}
}

// CreateOrder validates req, totals it and stores a pending order.
// total = sum(price * quantity) + delivery fee + tax - discount, floored at 0.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	if req.CustomerID == "" {
		return nil, ErrCustomerRequired
	}
	if req.ChefID == "" {
		return nil, ErrChefRequired
	}
	if len(req.Dishes) == 0 {
		return nil, ErrEmptyDishes
	}
	if req.DeliveryAddress == nil {
		return nil, ErrAddressRequired
	}
	payment := req.PaymentMethod
	if payment == "" {
		payment = enum.PaymentMethodCard
	}
	if !payment.Valid() {
		return nil, ErrInvalidPayment
	}
	if req.DeliveryFee.IsNegative() || req.TaxAmount.IsNegative() || req.DiscountAmount.IsNegative() {
		return nil, ErrNegativeAdjustment
	}

	subtotal := decimal.Zero
	lines := make([]model.OrderDish, len(req.Dishes))
	for i, d := range req.Dishes {
		if d.DishID == "" {
			return nil, fmt.Errorf("dishes[%d]: %w", i, ErrDishRequired)
		}
		if d.Quantity <= 0 {
			return nil, fmt.Errorf("dishes[%d]: %w", i, ErrInvalidQuantity)
		}
		if d.Price.IsNegative() {
			return nil, fmt.Errorf("dishes[%d]: %w", i, ErrInvalidPrice)
		}
		subtotal = subtotal.Add(d.Price.Mul(decimal.NewFromInt(int64(d.Quantity))))
		lines[i] = model.OrderDish{
			Dish:           model.RefTo[model.Dish](d.DishID),
			Quantity:       d.Quantity,
			Customizations: d.Customizations,
			Price:          model.MoneyOf(d.Price),
		}
	}

	total := subtotal.Add(req.DeliveryFee).Add(req.TaxAmount).Sub(req.DiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	placed := model.Timestamp(s.now())
	meta := model.OrderMetadata{
		Customer:            model.RefTo[model.Customer](req.CustomerID),
		Chef:                model.RefTo[model.Chef](req.ChefID),
		Dishes:              lines,
		Status:              enum.OrderStatusPending,
		TotalAmount:         model.MoneyOf(total),
		DeliveryAddress:     req.DeliveryAddress,
		PaymentMethod:       payment,
		DeliveryTime:        req.DeliveryTime,
		SpecialInstructions: req.SpecialInstructions,
		OrderDate:           placed,
		DeliveryFee:         optionalMoney(req.DeliveryFee),
		TaxAmount:           optionalMoney(req.TaxAmount),
		DiscountAmount:      optionalMoney(req.DiscountAmount),
		TrackingInfo:        &model.TrackingInfo{OrderPlaced: placed},
	}

	var order model.Order
	err := s.store.InsertOne(ctx, enum.TypeOrders, map[string]any{
		"type":     enum.TypeOrders,
		"title":    "Order " + cuid.New(),
		"metadata": meta,
	}, &order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("chef_id", req.ChefID),
		zap.String("total", total.StringFixed(2)),
	)
	return &order, nil
}

// UpdateOrderStatus moves an order to status, stamping the matching
// tracking field. Extra tracking entries are merged over the stored ones.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status enum.OrderStatus, tracking *model.TrackingInfo) (*model.Order, error) {
	if id == "" {
		return nil, ErrOrderRequired
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := findByID[model.Order](ctx, s.store, enum.TypeOrders, id)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	if current == nil {
		return nil, ErrOrderNotFound
	}
	if err := validateStatusTransition(current.Metadata.Status, status); err != nil {
		return nil, err
	}

	merged := mergeTracking(current.Metadata.TrackingInfo, tracking)
	stampTracking(&merged, status, model.Timestamp(s.now()))

	var updated model.Order
	err = s.store.UpdateOne(ctx, id, map[string]any{
		"metadata": map[string]any{
			"status":        status,
			"tracking_info": merged,
		},
	}, &updated)
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}

	s.logger.Info("order status updated",
		zap.String("order_id", id),
		zap.String("from", string(current.Metadata.Status)),
		zap.String("to", string(status)),
	)
	return &updated, nil
}

// ListOrdersByCustomer returns a customer's orders, newest first.
func (s *OrderService) ListOrdersByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	orders, err := s.listOrders(ctx, "metadata.customer", customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders for customer %s: %w", customerID, err)
	}
	return orders, nil
}

// ListOrdersByChef returns a chef's orders, newest first.
func (s *OrderService) ListOrdersByChef(ctx context.Context, chefID string) ([]model.Order, error) {
	orders, err := s.listOrders(ctx, "metadata.chef", chefID)
	if err != nil {
		return nil, fmt.Errorf("list orders for chef %s: %w", chefID, err)
	}
	return orders, nil
}

func (s *OrderService) listOrders(ctx context.Context, field, id string) ([]model.Order, error) {
	orders, err := findAll[model.Order](ctx, s.store, cosmic.Query{
		Type:    enum.TypeOrders,
		Filters: map[string]any{field: id},
		Props:   listProps,
		Depth:   1,
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(orders, func(a, b model.Order) int {
		return parseTime(b.Metadata.OrderDate).Compare(parseTime(a.Metadata.OrderDate))
	})
	return orders, nil
}

// --- Helpers ---

func validateStatusTransition(current, next enum.OrderStatus) error {
	if slices.Contains(allowedTransitions[current], next) {
		return nil
	}
	return fmt.Errorf("%w: cannot change status from %s to %s", ErrInvalidTransition, cmp.Or(string(current), "unset"), next)
}

func mergeTracking(stored, update *model.TrackingInfo) model.TrackingInfo {
	var out model.TrackingInfo
	if stored != nil {
		out = *stored
	}
	if update == nil {
		return out
	}
	out.OrderPlaced = cmp.Or(update.OrderPlaced, out.OrderPlaced)
	out.ChefAccepted = cmp.Or(update.ChefAccepted, out.ChefAccepted)
	out.PreparationStarted = cmp.Or(update.PreparationStarted, out.PreparationStarted)
	out.ReadyForPickup = cmp.Or(update.ReadyForPickup, out.ReadyForPickup)
	out.OutForDelivery = cmp.Or(update.OutForDelivery, out.OutForDelivery)
	out.Delivered = cmp.Or(update.Delivered, out.Delivered)
	return out
}

// stampTracking records at as the time the order reached status, unless a
// time was already given.
func stampTracking(t *model.TrackingInfo, status enum.OrderStatus, at string) {
	var field *string
	switch status {
	case enum.OrderStatusAccepted:
		field = &t.ChefAccepted
	case enum.OrderStatusPreparing:
		field = &t.PreparationStarted
	case enum.OrderStatusReady:
		field = &t.ReadyForPickup
	case enum.OrderStatusOutForDelivery:
		field = &t.OutForDelivery
	case enum.OrderStatusDelivered:
		field = &t.Delivered
	default:
		return
	}
	if *field == "" {
		*field = at
	}
}

func optionalMoney(d decimal.Decimal) *model.Money {
	if d.IsZero() {
		return nil
	}
	m := model.MoneyOf(d)
	return &m
}

// parseTime parses an RFC 3339 timestamp; unparseable values sort oldest.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
