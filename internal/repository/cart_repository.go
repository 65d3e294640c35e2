package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *cartRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// GetActiveCart returns the user's active cart, or nil if none exists.
func (r *cartRepository) GetActiveCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	query := `
		SELECT id, user_id, status, total, created_at
		FROM carts
		WHERE user_id = $1 AND status = 'active'
	`

	var cart model.Cart
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Status,
		&cart.Total,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query active cart")
		return nil, fmt.Errorf("failed to query active cart: %w", err)
	}

	return &cart, nil
}

// GetActiveCartForUpdate returns the user's active cart locked for the
// duration of the transaction, or nil if none exists.
func (r *cartRepository) GetActiveCartForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error) {
	query := `
		SELECT id, user_id, status, total, created_at
		FROM carts
		WHERE user_id = $1 AND status = 'active'
		FOR UPDATE
	`

	var cart model.Cart
	err := tx.QueryRow(ctx, query, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Status,
		&cart.Total,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to lock active cart")
		return nil, fmt.Errorf("failed to lock active cart: %w", err)
	}

	return &cart, nil
}

// GetOrCreateActiveCart returns the user's active cart, creating it if
// absent. The conditional insert targets the partial unique index on
// (user_id) WHERE status = 'active', so two concurrent calls cannot create
// two active carts. The subsequent SELECT ... FOR UPDATE serialises
// mutations of the same cart for the lifetime of the transaction.
func (r *cartRepository) GetOrCreateActiveCart(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error) {
	insert := `
		INSERT INTO carts (id, user_id, status, total)
		VALUES ($1, $2, 'active', 0)
		ON CONFLICT (user_id) WHERE status = 'active' DO NOTHING
	`

	if _, err := tx.Exec(ctx, insert, uuid.New(), userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to ensure active cart")
		return nil, fmt.Errorf("failed to ensure active cart: %w", err)
	}

	query := `
		SELECT id, user_id, status, total, created_at
		FROM carts
		WHERE user_id = $1 AND status = 'active'
		FOR UPDATE
	`

	var cart model.Cart
	err := tx.QueryRow(ctx, query, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Status,
		&cart.Total,
		&cart.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to lock active cart")
		return nil, fmt.Errorf("failed to lock active cart: %w", err)
	}

	return &cart, nil
}

// AddItem inserts a line item with the given price snapshot.
func (r *cartRepository) AddItem(ctx context.Context, tx pgx.Tx, cartID, productID uuid.UUID, quantity int, priceAtAddition decimal.Decimal) (*model.CartItem, error) {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, price_at_addition)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, cart_id, product_id, quantity, price_at_addition, created_at
	`

	var item model.CartItem
	err := tx.QueryRow(ctx, query, uuid.New(), cartID, productID, quantity, priceAtAddition).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.PriceAtAddition,
		&item.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_id", cartID.String()).
			Str("product_id", productID.String()).
			Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	r.logger.Debug().
		Str("cart_id", cartID.String()).
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Msg("cart item added")

	return &item, nil
}

// UpdateItemQuantity overwrites the quantity of the matching line item.
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, tx pgx.Tx, cartID, productID uuid.UUID, quantity int) (*model.CartItem, error) {
	query := `
		UPDATE cart_items
		SET quantity = $3
		WHERE cart_id = $1 AND product_id = $2
		RETURNING id, cart_id, product_id, quantity, price_at_addition, created_at
	`

	var item model.CartItem
	err := tx.QueryRow(ctx, query, cartID, productID, quantity).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.PriceAtAddition,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("cart_id", cartID.String()).
			Str("product_id", productID.String()).
			Msg("failed to update cart item")
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return &item, nil
}

// RemoveItem deletes the matching line item.
func (r *cartRepository) RemoveItem(ctx context.Context, tx pgx.Tx, cartID, productID uuid.UUID) (*model.CartItem, error) {
	query := `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
		RETURNING id, cart_id, product_id, quantity, price_at_addition, created_at
	`

	var item model.CartItem
	err := tx.QueryRow(ctx, query, cartID, productID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.PriceAtAddition,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("cart_id", cartID.String()).
			Str("product_id", productID.String()).
			Msg("failed to remove cart item")
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return &item, nil
}

// RecomputeTotal re-sums the cart's items and persists the result. The total
// is always derived from current rows rather than patched incrementally, so
// it cannot drift from the line items.
func (r *cartRepository) RecomputeTotal(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) (decimal.Decimal, error) {
	query := `
		UPDATE carts
		SET total = COALESCE(
			(SELECT SUM(price_at_addition * quantity) FROM cart_items WHERE cart_id = $1),
			0
		)
		WHERE id = $1
		RETURNING total
	`

	var total decimal.Decimal
	if err := tx.QueryRow(ctx, query, cartID).Scan(&total); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to recompute cart total")
		return decimal.Zero, fmt.Errorf("failed to recompute cart total: %w", err)
	}

	r.logger.Debug().
		Str("cart_id", cartID.String()).
		Str("total", total.String()).
		Msg("cart total recomputed")

	return total, nil
}

// ListItems returns the user's active cart items joined with product metadata.
func (r *cartRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.price_at_addition, ci.created_at,
		       p.name, p.price
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		JOIN carts c ON ci.cart_id = c.id
		WHERE c.user_id = $1 AND c.status = 'active'
		ORDER BY ci.created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []model.CartItemDetail{}
	for rows.Next() {
		var item model.CartItemDetail
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Quantity,
			&item.PriceAtAddition,
			&item.CreatedAt,
			&item.ProductName,
			&item.CurrentPrice,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// SetStatus transitions the cart to the given status.
func (r *cartRepository) SetStatus(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, status string) (*model.Cart, error) {
	query := `
		UPDATE carts
		SET status = $2
		WHERE id = $1
		RETURNING id, user_id, status, total, created_at
	`

	var cart model.Cart
	err := tx.QueryRow(ctx, query, cartID, status).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Status,
		&cart.Total,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("cart_id", cartID.String()).Msg("cart not found for status update")
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("cart_id", cartID.String()).
			Str("status", status).
			Msg("failed to update cart status")
		return nil, fmt.Errorf("failed to update cart status: %w", err)
	}

	r.logger.Debug().
		Str("cart_id", cartID.String()).
		Str("status", status).
		Msg("cart status updated")

	return &cart, nil
}
