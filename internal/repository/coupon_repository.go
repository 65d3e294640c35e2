package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const couponColumns = "id, code, discount_type, discount_value, minimum_order_value, expiration_date, usage_limit, times_used, created_at"

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var coupon model.Coupon
	err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&coupon.MinimumOrderValue,
		&coupon.ExpirationDate,
		&coupon.UsageLimit,
		&coupon.TimesUsed,
		&coupon.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Create inserts a new coupon.
func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	query := `
		INSERT INTO coupons (id, code, discount_type, discount_value, minimum_order_value, expiration_date, usage_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + couponColumns

	created, err := scanCoupon(r.pool.QueryRow(ctx, query,
		uuid.New(),
		coupon.Code,
		coupon.DiscountType,
		coupon.DiscountValue,
		coupon.MinimumOrderValue,
		coupon.ExpirationDate,
		coupon.UsageLimit,
	))
	if err != nil {
		r.logger.Error().Err(err).Str("code", coupon.Code).Msg("failed to create coupon")
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	r.logger.Info().Str("code", created.Code).Msg("coupon created")

	return created, nil
}

// GetByCode returns the coupon with the given code, or nil if unknown.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	coupon, err := scanCoupon(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return coupon, nil
}

// Update applies the non-nil fields of the update. Column names come from a
// fixed allow-list here, never from caller input.
func (r *couponRepository) Update(ctx context.Context, id uuid.UUID, update model.CouponUpdate) (*model.Coupon, error) {
	setClauses := make([]string, 0, 6)
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Code != nil {
		addSet("code", *update.Code)
	}
	if update.DiscountType != nil {
		addSet("discount_type", *update.DiscountType)
	}
	if update.DiscountValue != nil {
		addSet("discount_value", *update.DiscountValue)
	}
	if update.MinimumOrderValue != nil {
		addSet("minimum_order_value", *update.MinimumOrderValue)
	}
	if update.ExpirationDate != nil {
		addSet("expiration_date", *update.ExpirationDate)
	}
	if update.UsageLimit != nil {
		addSet("usage_limit", *update.UsageLimit)
	}

	if len(setClauses) == 0 {
		query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`
		coupon, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to query coupon: %w", err)
		}
		return coupon, nil
	}

	query := fmt.Sprintf(
		"UPDATE coupons SET %s WHERE id = $1 RETURNING %s",
		strings.Join(setClauses, ", "),
		couponColumns,
	)

	coupon, err := scanCoupon(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to update coupon")
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	return coupon, nil
}

// Delete removes the coupon.
func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := `DELETE FROM coupons WHERE id = $1 RETURNING ` + couponColumns

	coupon, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return nil, fmt.Errorf("failed to delete coupon: %w", err)
	}

	r.logger.Info().Str("code", coupon.Code).Msg("coupon deleted")

	return coupon, nil
}

// ApplyToCart records the coupon application on a cart.
func (r *couponRepository) ApplyToCart(ctx context.Context, tx pgx.Tx, cartID, couponID uuid.UUID) (*model.CartCoupon, error) {
	query := `
		INSERT INTO cart_coupons (id, cart_id, coupon_id)
		VALUES ($1, $2, $3)
		RETURNING id, cart_id, coupon_id, applied_at
	`

	var cc model.CartCoupon
	err := tx.QueryRow(ctx, query, uuid.New(), cartID, couponID).Scan(
		&cc.ID,
		&cc.CartID,
		&cc.CouponID,
		&cc.AppliedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_id", cartID.String()).
			Str("coupon_id", couponID.String()).
			Msg("failed to record coupon application")
		return nil, fmt.Errorf("failed to record coupon application: %w", err)
	}

	return &cc, nil
}

// IncrementUsage atomically advances times_used. The usage-limit guard lives
// in the WHERE clause of the same statement, so two concurrent checkouts
// racing for the last use cannot both succeed.
func (r *couponRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) (*model.Coupon, error) {
	query := `
		UPDATE coupons
		SET times_used = times_used + 1
		WHERE id = $1 AND (usage_limit IS NULL OR times_used < usage_limit)
		RETURNING ` + couponColumns

	coupon, err := scanCoupon(tx.QueryRow(ctx, query, couponID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("coupon_id", couponID.String()).Msg("coupon usage limit reached")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", couponID.String()).Msg("failed to increment coupon usage")
		return nil, fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	r.logger.Debug().
		Str("code", coupon.Code).
		Int("times_used", coupon.TimesUsed).
		Msg("coupon usage incremented")

	return coupon, nil
}
