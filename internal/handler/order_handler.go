package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// OrderHandler handles checkout and order HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

type checkoutRequest struct {
	CartID     string          `json:"cart_id" validate:"required,uuid"`
	CouponCode *string         `json:"coupon_code"`
	CartTotal  decimal.Decimal `json:"cart_total"`
}

type createOrderRequest struct {
	CartID string          `json:"cart_id" validate:"required,uuid"`
	Total  decimal.Decimal `json:"total"`
}

// Checkout handles POST /api/checkout requests.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req checkoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.CartTotal.IsNegative() {
		writeError(w, model.NewValidationError("Cart total cannot be negative"), h.logger)
		return
	}
	cartID := uuid.MustParse(req.CartID)

	order, err := h.service.Checkout(r.Context(), userID, cartID, req.CouponCode, req.CartTotal)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Checkout successful",
		"total":   order.Total,
		"order":   order,
	})
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req createOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.Total.IsNegative() {
		writeError(w, model.NewValidationError("Order total cannot be negative"), h.logger)
		return
	}
	cartID := uuid.MustParse(req.CartID)

	order, err := h.service.CreateOrder(r.Context(), userID, cartID, req.Total)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created",
		"order":   order,
	})
}

// GetAll handles GET /api/orders requests.
func (h *OrderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	orders, err := h.service.GetUserOrders(r.Context(), userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	orderID, err := pathID(r.URL.Path, "/api/orders/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order": order,
	})
}

// Cancel handles DELETE /api/orders/{id} requests.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	orderID, err := pathID(r.URL.Path, "/api/orders/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.CancelOrder(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order cancelled",
		"order":   order,
	})
}
