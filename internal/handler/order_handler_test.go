package handler

import (
	"net/http"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func decimalArg(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestOrderHandler_Checkout(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()
	cartID := uuid.New()
	couponCode := "SAVE10"

	mockSvc := new(MockOrderService)
	h := NewOrderHandler(mockSvc, zerolog.Nop())

	order := &model.Order{
		ID:     uuid.New(),
		CartID: cartID,
		Status: model.OrderStatusPending,
		Total:  decimal.NewFromInt(90),
	}
	mockSvc.On("Checkout", mock.Anything, userID, cartID,
		mock.MatchedBy(func(code *string) bool { return code != nil && *code == couponCode }),
		decimalArg(decimal.NewFromInt(100))).
		Return(order, nil)

	req := authedRequest(t, tokens, userID, http.MethodPost, "/api/checkout", map[string]interface{}{
		"cart_id":     cartID.String(),
		"coupon_code": couponCode,
		"cart_total":  100,
	})
	rec := serveAuthed(tokens, h.Checkout, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Checkout successful", body["message"])
	assert.NotNil(t, body["order"])
	assert.NotNil(t, body["total"])
}

func TestOrderHandler_Checkout_EmptyCart(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()
	cartID := uuid.New()

	mockSvc := new(MockOrderService)
	h := NewOrderHandler(mockSvc, zerolog.Nop())

	mockSvc.On("Checkout", mock.Anything, userID, cartID, mock.Anything, mock.Anything).
		Return(nil, model.ErrEmptyCart)

	req := authedRequest(t, tokens, userID, http.MethodPost, "/api/checkout", map[string]interface{}{
		"cart_id":    cartID.String(),
		"cart_total": 0,
	})
	rec := serveAuthed(tokens, h.Checkout, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart is empty")
}

func TestOrderHandler_Checkout_NegativeTotal(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()

	mockSvc := new(MockOrderService)
	h := NewOrderHandler(mockSvc, zerolog.Nop())

	req := authedRequest(t, tokens, userID, http.MethodPost, "/api/checkout", map[string]interface{}{
		"cart_id":    uuid.New().String(),
		"cart_total": -5,
	})
	rec := serveAuthed(tokens, h.Checkout, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "Checkout",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHandler_GetByID_NotFound(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()
	orderID := uuid.New()

	mockSvc := new(MockOrderService)
	h := NewOrderHandler(mockSvc, zerolog.Nop())

	mockSvc.On("GetOrder", mock.Anything, userID, orderID).Return(nil, model.ErrOrderNotFound)

	req := authedRequest(t, tokens, userID, http.MethodGet, "/api/orders/"+orderID.String(), nil)
	rec := serveAuthed(tokens, h.GetByID, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order not found")
}

func TestOrderHandler_Cancel(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()
	orderID := uuid.New()

	mockSvc := new(MockOrderService)
	h := NewOrderHandler(mockSvc, zerolog.Nop())

	cancelled := &model.Order{ID: orderID, Status: model.OrderStatusCancelled}
	mockSvc.On("CancelOrder", mock.Anything, userID, orderID).Return(cancelled, nil)

	req := authedRequest(t, tokens, userID, http.MethodDelete, "/api/orders/"+orderID.String(), nil)
	rec := serveAuthed(tokens, h.Cancel, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Order cancelled", body["message"])
}

func TestOrderHandler_GetAll(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()

	mockSvc := new(MockOrderService)
	h := NewOrderHandler(mockSvc, zerolog.Nop())

	orders := []model.Order{
		{ID: uuid.New(), Status: model.OrderStatusPending, Total: decimal.NewFromInt(10)},
		{ID: uuid.New(), Status: model.OrderStatusCancelled, Total: decimal.NewFromInt(20)},
	}
	mockSvc.On("GetUserOrders", mock.Anything, userID).Return(orders, nil)

	req := authedRequest(t, tokens, userID, http.MethodGet, "/api/orders", nil)
	rec := serveAuthed(tokens, h.GetAll, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["orders"], 2)
}
