package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	return httptest.NewRequest(method, path, &buf)
}

func TestCouponHandler_Validate(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()

	mockSvc := new(MockCouponService)
	h := NewCouponHandler(mockSvc, zerolog.Nop())

	coupon := &model.Coupon{
		ID:            uuid.New(),
		Code:          "SAVE10",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
	}
	mockSvc.On("Validate", mock.Anything, "SAVE10", decimalArg(decimal.NewFromInt(200))).
		Return(coupon, nil)

	req := authedRequest(t, tokens, userID, http.MethodPost, "/api/coupons/validate", map[string]interface{}{
		"code":       "SAVE10",
		"cart_total": 200,
	})
	rec := serveAuthed(tokens, h.Validate, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Coupon is valid", body["message"])
	assert.Equal(t, "20", body["discount"])
}

func TestCouponHandler_Validate_FailureOrder(t *testing.T) {
	tokens := testTokens()
	userID := uuid.New()

	tests := []struct {
		name       string
		err        *model.DomainError
		wantStatus int
	}{
		{"unknown code", model.ErrCouponNotFound, http.StatusNotFound},
		{"usage limit", model.ErrCouponUsageLimit, http.StatusBadRequest},
		{"expired", model.ErrCouponExpired, http.StatusBadRequest},
		{"minimum order", model.ErrCouponMinimumOrder, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockCouponService)
			h := NewCouponHandler(mockSvc, zerolog.Nop())

			mockSvc.On("Validate", mock.Anything, "CODE", mock.Anything).Return(nil, tt.err)

			req := authedRequest(t, tokens, userID, http.MethodPost, "/api/coupons/validate", map[string]interface{}{
				"code":       "CODE",
				"cart_total": 10,
			})
			rec := serveAuthed(tokens, h.Validate, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.err.Message)
		})
	}
}

func TestCouponHandler_Create(t *testing.T) {
	mockSvc := new(MockCouponService)
	h := NewCouponHandler(mockSvc, zerolog.Nop())

	created := &model.Coupon{
		ID:            uuid.New(),
		Code:          "NEW",
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
	}
	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*model.Coupon")).Return(created, nil)

	req := jsonRequest(t, http.MethodPost, "/api/coupons", map[string]interface{}{
		"code":           "NEW",
		"discount_type":  "fixed",
		"discount_value": 5,
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Coupon created", body["message"])
}

func TestCouponHandler_Create_BadDiscountType(t *testing.T) {
	mockSvc := new(MockCouponService)
	h := NewCouponHandler(mockSvc, zerolog.Nop())

	req := jsonRequest(t, http.MethodPost, "/api/coupons", map[string]interface{}{
		"code":          "BAD",
		"discount_type": "bogof",
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCouponHandler_Delete(t *testing.T) {
	mockSvc := new(MockCouponService)
	h := NewCouponHandler(mockSvc, zerolog.Nop())

	id := uuid.New()
	deleted := &model.Coupon{ID: id, Code: "GONE", DiscountType: model.DiscountFixed}
	mockSvc.On("Delete", mock.Anything, id).Return(deleted, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/coupons/"+id.String(), nil)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Coupon deleted", body["message"])
}
