package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount types accepted by the coupons table CHECK constraint.
const (
	DiscountPercentage   = "percentage"
	DiscountFixed        = "fixed"
	DiscountFreeShipping = "free_shipping"
)

// Coupon is a global discount code. TimesUsed is only ever advanced through
// the conditional increment in the coupon repository so it can never exceed
// UsageLimit, even under concurrent checkouts.
type Coupon struct {
	ID                uuid.UUID        `json:"id" db:"id"`
	Code              string           `json:"code" db:"code"`
	DiscountType      string           `json:"discountType" db:"discount_type"`
	DiscountValue     decimal.Decimal  `json:"discountValue" db:"discount_value"`
	MinimumOrderValue *decimal.Decimal `json:"minimumOrderValue,omitempty" db:"minimum_order_value"`
	ExpirationDate    *time.Time       `json:"expirationDate,omitempty" db:"expiration_date"`
	UsageLimit        *int             `json:"usageLimit,omitempty" db:"usage_limit"`
	TimesUsed         int              `json:"timesUsed" db:"times_used"`
	CreatedAt         time.Time        `json:"createdAt" db:"created_at"`
}

// Discount computes the monetary discount this coupon grants on the given
// cart total. A fixed discount is capped at the total so an order total can
// never go negative; free shipping and unknown types grant no monetary
// discount.
func (c *Coupon) Discount(cartTotal decimal.Decimal) decimal.Decimal {
	switch c.DiscountType {
	case DiscountPercentage:
		return cartTotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	case DiscountFixed:
		if c.DiscountValue.GreaterThan(cartTotal) {
			return cartTotal
		}
		return c.DiscountValue
	default:
		return decimal.Zero
	}
}

// CouponUpdate holds the allow-listed coupon fields an admin may change.
// Nil fields are left untouched.
type CouponUpdate struct {
	Code              *string
	DiscountType      *string
	DiscountValue     *decimal.Decimal
	MinimumOrderValue *decimal.Decimal
	ExpirationDate    *time.Time
	UsageLimit        *int
}

// CartCoupon records that a coupon was applied to a cart, as the audit
// anchor for coupon use.
type CartCoupon struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CartID    uuid.UUID `json:"cartId" db:"cart_id"`
	CouponID  uuid.UUID `json:"couponId" db:"coupon_id"`
	AppliedAt time.Time `json:"appliedAt" db:"applied_at"`
}
