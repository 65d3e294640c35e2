package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponRepository_CreateAndGetByCode(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())

	minOrder := decimal.NewFromInt(50)
	expiry := time.Now().Add(24 * time.Hour).UTC()
	limit := 100

	created, err := repo.Create(ctx, &model.Coupon{
		ID:                uuid.New(),
		Code:              "SAVE10",
		DiscountType:      model.DiscountPercentage,
		DiscountValue:     decimal.NewFromInt(10),
		MinimumOrderValue: &minOrder,
		ExpirationDate:    &expiry,
		UsageLimit:        &limit,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	found, err := repo.GetByCode(ctx, "SAVE10")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, model.DiscountPercentage, found.DiscountType)
	assert.True(t, found.MinimumOrderValue.Equal(minOrder))
	assert.Equal(t, 0, found.TimesUsed)

	unknown, err := repo.GetByCode(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestCouponRepository_Update(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())

	coupon := seedCoupon(t, pool, model.Coupon{
		Code:          "FLAT5",
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
	})

	newValue := decimal.NewFromInt(7)
	newLimit := 3
	updated, err := repo.Update(ctx, coupon.ID, model.CouponUpdate{
		DiscountValue: &newValue,
		UsageLimit:    &newLimit,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.DiscountValue.Equal(newValue))
	require.NotNil(t, updated.UsageLimit)
	assert.Equal(t, 3, *updated.UsageLimit)
	assert.Equal(t, "FLAT5", updated.Code, "untouched fields keep their values")

	missing, err := repo.Update(ctx, uuid.New(), model.CouponUpdate{DiscountValue: &newValue})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCouponRepository_Delete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())

	coupon := seedCoupon(t, pool, model.Coupon{
		Code:          "GONE",
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.NewFromInt(1),
	})

	deleted, err := repo.Delete(ctx, coupon.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	found, err := repo.GetByCode(ctx, "GONE")
	require.NoError(t, err)
	assert.Nil(t, found)

	again, err := repo.Delete(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestCouponRepository_IncrementUsage_Guard(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())
	cartRepo := NewCartRepository(pool, zerolog.Nop())

	limit := 2
	coupon := seedCoupon(t, pool, model.Coupon{
		Code:          "LIMIT2",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		UsageLimit:    &limit,
	})

	for want := 1; want <= 2; want++ {
		tx, err := cartRepo.BeginTx(ctx)
		require.NoError(t, err)
		updated, err := repo.IncrementUsage(ctx, tx, coupon.ID)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, want, updated.TimesUsed)
		require.NoError(t, tx.Commit(ctx))
	}

	// Third application hits the limit inside the same statement.
	tx, err := cartRepo.BeginTx(ctx)
	require.NoError(t, err)
	updated, err := repo.IncrementUsage(ctx, tx, coupon.ID)
	require.NoError(t, err)
	assert.Nil(t, updated)
	require.NoError(t, tx.Rollback(ctx))
}

func TestCouponRepository_IncrementUsage_Concurrent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())
	cartRepo := NewCartRepository(pool, zerolog.Nop())

	limit := 5
	coupon := seedCoupon(t, pool, model.Coupon{
		Code:          "RACE5",
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.NewFromInt(2),
		UsageLimit:    &limit,
	})

	const workers = 12
	var wg sync.WaitGroup
	results := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := cartRepo.BeginTx(ctx)
			if err != nil {
				t.Error(err)
				return
			}
			updated, err := repo.IncrementUsage(ctx, tx, coupon.ID)
			if err != nil {
				_ = tx.Rollback(ctx)
				t.Error(err)
				return
			}
			if err := tx.Commit(ctx); err != nil {
				t.Error(err)
				return
			}
			results <- updated != nil
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for ok := range results {
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, limit, succeeded, "exactly usage_limit applications may succeed")

	final, err := repo.GetByCode(ctx, "RACE5")
	require.NoError(t, err)
	require.NotNil(t, final)
	assert.Equal(t, limit, final.TimesUsed)
}

func TestCouponRepository_ApplyToCart(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewCouponRepository(pool, zerolog.Nop())
	cartRepo := NewCartRepository(pool, zerolog.Nop())

	userID := seedUser(t, pool, "apply@example.com")
	coupon := seedCoupon(t, pool, model.Coupon{
		Code:          "APPLYME",
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.NewFromInt(3),
	})

	tx, err := cartRepo.BeginTx(ctx)
	require.NoError(t, err)
	cart, err := cartRepo.GetOrCreateActiveCart(ctx, tx, userID)
	require.NoError(t, err)

	applied, err := repo.ApplyToCart(ctx, tx, cart.ID, coupon.ID)
	require.NoError(t, err)
	require.NotNil(t, applied)
	assert.Equal(t, cart.ID, applied.CartID)
	assert.Equal(t, coupon.ID, applied.CouponID)
	require.NoError(t, tx.Commit(ctx))
}
