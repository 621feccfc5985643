package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/enum"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/model"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/service"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/ws"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status enum.OrderStatus, tracking *model.TrackingInfo) (*model.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]model.Order, error)
}

// OrderBroadcaster pushes order events to a chef's live feed.
// Satisfied by *ws.Hub.
type OrderBroadcaster interface {
	PublishJSON(chefID, eventType string, payload any) error
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc    OrderServicer
	events OrderBroadcaster
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, events OrderBroadcaster, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, events: events, logger: logger}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /api/orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// RegisterCustomerRoutes registers customer-scoped order endpoints.
// Expected to be mounted at /api/customers.
func (h *OrderHandler) RegisterCustomerRoutes(r chi.Router) {
	r.Get("/{id}/orders", h.ListByCustomer)
}

// --- Request types ---

type createOrderRequest struct {
	CustomerID          string                   `json:"customer_id"`
	ChefID              string                   `json:"chef_id"`
	Dishes              []createOrderDishRequest `json:"dishes"`
	DeliveryAddress     *model.Address           `json:"delivery_address"`
	PaymentMethod       string                   `json:"payment_method"`
	SpecialInstructions string                   `json:"special_instructions"`
	DeliveryTime        string                   `json:"delivery_time"`
	DeliveryFee         decimal.Decimal          `json:"delivery_fee"`
	TaxAmount           decimal.Decimal          `json:"tax_amount"`
	DiscountAmount      decimal.Decimal          `json:"discount_amount"`
}

type createOrderDishRequest struct {
	DishID         string                `json:"dish_id"`
	Quantity       int                   `json:"quantity"`
	Price          decimal.Decimal       `json:"price"`
	Customizations *model.Customizations `json:"customizations"`
}

type updateStatusRequest struct {
	Status       string              `json:"status"`
	TrackingInfo *model.TrackingInfo `json:"tracking_info"`
}

// --- Handlers ---

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	dishes := make([]service.CreateOrderDishRequest, len(req.Dishes))
	for i, d := range req.Dishes {
		dishes[i] = service.CreateOrderDishRequest{
			DishID:         d.DishID,
			Quantity:       d.Quantity,
			Price:          d.Price,
			Customizations: d.Customizations,
		}
	}

	order, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		CustomerID:          req.CustomerID,
		ChefID:              req.ChefID,
		Dishes:              dishes,
		DeliveryAddress:     req.DeliveryAddress,
		PaymentMethod:       enum.PaymentMethod(req.PaymentMethod),
		SpecialInstructions: req.SpecialInstructions,
		DeliveryTime:        req.DeliveryTime,
		DeliveryFee:         req.DeliveryFee,
		TaxAmount:           req.TaxAmount,
		DiscountAmount:      req.DiscountAmount,
	})
	if err != nil {
		writeError(w, h.logger, "create order", err)
		return
	}

	resp := toOrderResponse(*order)
	h.publish(req.ChefID, ws.EventOrderCreated, resp)
	writeJSON(w, h.logger, http.StatusCreated, resp)
}

// UpdateStatus handles PATCH /api/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, h.logger, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	order, err := h.svc.UpdateOrderStatus(r.Context(), id, enum.OrderStatus(req.Status), req.TrackingInfo)
	if err != nil {
		writeError(w, h.logger, fmt.Sprintf("update order %s status", id), err)
		return
	}

	resp := toOrderResponse(*order)
	h.publish(resp.ChefID, ws.EventOrderUpdated, resp)
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// ListByCustomer handles GET /api/customers/{id}/orders.
func (h *OrderHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrdersByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, "list customer orders", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toOrderResponses(orders))
}

// publish sends an order event to the chef's feed. Failures are logged;
// the request has already succeeded.
func (h *OrderHandler) publish(chefID, eventType string, resp orderResponse) {
	if h.events == nil || chefID == "" {
		return
	}
	if err := h.events.PublishJSON(chefID, eventType, resp); err != nil {
		h.logger.Warn("publish order event",
			zap.String("event", eventType),
			zap.String("order_id", resp.ID),
			zap.Error(err),
		)
	}
}
