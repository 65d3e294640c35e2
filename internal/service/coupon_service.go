package service

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// couponService implements the CouponService interface.
type couponService struct {
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
	now        func() time.Time
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "coupon").Logger(),
		now:        time.Now,
	}
}

// Validate checks a code against the cart total. The checks run in a fixed
// order so callers always get the same error for the same coupon state:
// unknown code, then usage limit, then expiration, then minimum order value.
func (s *couponService) Validate(ctx context.Context, code string, cartTotal decimal.Decimal) (*model.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}

	if coupon.UsageLimit != nil && coupon.TimesUsed >= *coupon.UsageLimit {
		return nil, model.ErrCouponUsageLimit
	}

	if coupon.ExpirationDate != nil && coupon.ExpirationDate.Before(s.now()) {
		return nil, model.ErrCouponExpired
	}

	if coupon.MinimumOrderValue != nil && cartTotal.LessThan(*coupon.MinimumOrderValue) {
		return nil, model.ErrCouponMinimumOrder
	}

	return coupon, nil
}

// Apply validates the coupon, records its application on the cart and
// advances the usage counter, all inside the caller's transaction. The
// increment re-checks the limit in the database, so a validation pass that
// raced another application still fails cleanly here and rolls back with the
// rest of the checkout.
func (s *couponService) Apply(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, code string, cartTotal decimal.Decimal) (*model.Coupon, error) {
	coupon, err := s.Validate(ctx, code, cartTotal)
	if err != nil {
		return nil, err
	}

	if _, err := s.couponRepo.ApplyToCart(ctx, tx, cartID, coupon.ID); err != nil {
		return nil, err
	}

	updated, err := s.couponRepo.IncrementUsage(ctx, tx, coupon.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.ErrCouponUsageLimit
	}

	s.logger.Info().
		Str("cart_id", cartID.String()).
		Str("coupon_code", coupon.Code).
		Msg("coupon applied to cart")

	return updated, nil
}

// Create inserts a new coupon.
func (s *couponService) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	if coupon.Code == "" {
		return nil, model.NewValidationError("Coupon code is required")
	}
	switch coupon.DiscountType {
	case model.DiscountPercentage, model.DiscountFixed, model.DiscountFreeShipping:
	default:
		return nil, model.NewValidationError("Invalid discount type")
	}
	if coupon.DiscountValue.IsNegative() {
		return nil, model.NewValidationError("Discount value cannot be negative")
	}

	created, err := s.couponRepo.Create(ctx, coupon)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("coupon_code", created.Code).Msg("coupon created")
	return created, nil
}

// Update applies the non-nil fields of the update.
func (s *couponService) Update(ctx context.Context, id uuid.UUID, update model.CouponUpdate) (*model.Coupon, error) {
	coupon, err := s.couponRepo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}
	return coupon, nil
}

// Delete removes a coupon.
func (s *couponService) Delete(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	coupon, err := s.couponRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}

	s.logger.Info().Str("coupon_id", id.String()).Msg("coupon deleted")
	return coupon, nil
}
