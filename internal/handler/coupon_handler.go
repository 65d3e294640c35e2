package handler

import (
	"net/http"
	"time"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CouponHandler handles coupon HTTP requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

type couponRequest struct {
	Code              string           `json:"code" validate:"required,max=50"`
	DiscountType      string           `json:"discount_type" validate:"required,oneof=percentage fixed free_shipping"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	MinimumOrderValue *decimal.Decimal `json:"minimum_order_value"`
	ExpirationDate    *time.Time       `json:"expiration_date"`
	UsageLimit        *int             `json:"usage_limit" validate:"omitempty,min=1"`
}

type couponUpdateRequest struct {
	Code              *string          `json:"code" validate:"omitempty,max=50"`
	DiscountType      *string          `json:"discount_type" validate:"omitempty,oneof=percentage fixed free_shipping"`
	DiscountValue     *decimal.Decimal `json:"discount_value"`
	MinimumOrderValue *decimal.Decimal `json:"minimum_order_value"`
	ExpirationDate    *time.Time       `json:"expiration_date"`
	UsageLimit        *int             `json:"usage_limit" validate:"omitempty,min=1"`
}

type validateCouponRequest struct {
	Code      string          `json:"code" validate:"required"`
	CartTotal decimal.Decimal `json:"cart_total"`
}

// Create handles POST /api/coupons requests.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupon, err := h.service.Create(r.Context(), &model.Coupon{
		ID:                uuid.New(),
		Code:              req.Code,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinimumOrderValue: req.MinimumOrderValue,
		ExpirationDate:    req.ExpirationDate,
		UsageLimit:        req.UsageLimit,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Coupon created",
		"coupon":  coupon,
	})
}

// Update handles PUT /api/coupons/{id} requests.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/coupons/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req couponUpdateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupon, err := h.service.Update(r.Context(), id, model.CouponUpdate{
		Code:              req.Code,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinimumOrderValue: req.MinimumOrderValue,
		ExpirationDate:    req.ExpirationDate,
		UsageLimit:        req.UsageLimit,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Coupon updated",
		"coupon":  coupon,
	})
}

// Delete handles DELETE /api/coupons/{id} requests.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/coupons/")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupon, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Coupon deleted",
		"coupon":  coupon,
	})
}

// Validate handles POST /api/coupons/validate requests.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.CartTotal.IsNegative() {
		writeError(w, model.NewValidationError("Cart total cannot be negative"), h.logger)
		return
	}

	coupon, err := h.service.Validate(r.Context(), req.Code, req.CartTotal)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Coupon is valid",
		"coupon":   coupon,
		"discount": coupon.Discount(req.CartTotal),
	})
}
