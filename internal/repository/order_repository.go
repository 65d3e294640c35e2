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

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a pending order for the given cart and total.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, total decimal.Decimal) (*model.Order, error) {
	query := `
		INSERT INTO orders (id, cart_id, status, total)
		VALUES ($1, $2, 'pending', $3)
		RETURNING id, cart_id, status, total, created_at
	`

	var order model.Order
	err := tx.QueryRow(ctx, query, uuid.New(), cartID, total).Scan(
		&order.ID,
		&order.CartID,
		&order.Status,
		&order.Total,
		&order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_id", cartID.String()).
			Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("total", order.Total.String()).
		Msg("order created")

	return &order, nil
}

// GetByID retrieves an order joined with the owning user id and cart status.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT o.id, o.cart_id, o.status, o.total, o.created_at, c.user_id, c.status AS cart_status
		FROM orders o
		JOIN carts c ON o.cart_id = c.id
		WHERE o.id = $1
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.CartID,
		&order.Status,
		&order.Total,
		&order.CreatedAt,
		&order.UserID,
		&order.CartStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &order, nil
}

// GetAllForUser retrieves the user's orders, most recent first.
func (r *orderRepository) GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `
		SELECT o.id, o.cart_id, o.status, o.total, o.created_at, c.user_id, c.status AS cart_status
		FROM orders o
		JOIN carts c ON o.cart_id = c.id
		WHERE c.user_id = $1
		ORDER BY o.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query user orders")
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var order model.Order
		err := rows.Scan(
			&order.ID,
			&order.CartID,
			&order.Status,
			&order.Total,
			&order.CreatedAt,
			&order.UserID,
			&order.CartStatus,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// Cancel sets the order status to cancelled.
func (r *orderRepository) Cancel(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	query := `
		UPDATE orders
		SET status = 'cancelled'
		WHERE id = $1
		RETURNING id, cart_id, status, total, created_at
	`

	var order model.Order
	err := tx.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.CartID,
		&order.Status,
		&order.Total,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found for cancellation")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to cancel order")
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	r.logger.Info().Str("order_id", order.ID.String()).Msg("order cancelled")

	return &order, nil
}
