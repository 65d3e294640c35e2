package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager(config.AuthConfig{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
	})
}

// authedRequest builds a request carrying a valid bearer token for the user.
func authedRequest(t *testing.T, tokens *auth.TokenManager, userID uuid.UUID, method, path string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)

	token, err := tokens.IssueAccessToken(&model.User{ID: userID, Email: "t@example.com", Role: model.RoleUser})
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// serveAuthed runs the handler behind the bearer auth middleware, the way the
// router mounts it.
func serveAuthed(tokens *auth.TokenManager, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.BearerAuth(tokens, zerolog.Nop())(h).ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if item, ok := args.Get(0).(*model.CartItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if item, ok := args.Get(0).(*model.CartItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*model.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if item, ok := args.Get(0).(*model.CartItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartService) ListItems(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error) {
	args := m.Called(ctx, userID)
	if items, ok := args.Get(0).([]model.CartItemDetail); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, userID, cartID uuid.UUID, couponCode *string, cartTotal decimal.Decimal) (*model.Order, error) {
	args := m.Called(ctx, userID, cartID, couponCode, cartTotal)
	if order, ok := args.Get(0).(*model.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, userID, cartID uuid.UUID, total decimal.Decimal) (*model.Order, error) {
	args := m.Called(ctx, userID, cartID, total)
	if order, ok := args.Get(0).(*model.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if order, ok := args.Get(0).(*model.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]model.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if order, ok := args.Get(0).(*model.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCouponService is a mock implementation of service.CouponService.
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) Validate(ctx context.Context, code string, cartTotal decimal.Decimal) (*model.Coupon, error) {
	args := m.Called(ctx, code, cartTotal)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponService) Apply(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, code string, cartTotal decimal.Decimal) (*model.Coupon, error) {
	args := m.Called(ctx, tx, cartID, code, cartTotal)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponService) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	args := m.Called(ctx, coupon)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, id uuid.UUID, update model.CouponUpdate) (*model.Coupon, error) {
	args := m.Called(ctx, id, update)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponService) Delete(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
