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
)

const addressColumns = "id, user_id, address_line_1, address_line_2, city, state, postal_code, country, created_at"

// addressRepository implements the AddressRepository interface using PostgreSQL.
type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed shipping address repository.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

func scanAddress(row pgx.Row) (*model.ShippingAddress, error) {
	var addr model.ShippingAddress
	err := row.Scan(
		&addr.ID,
		&addr.UserID,
		&addr.AddressLine1,
		&addr.AddressLine2,
		&addr.City,
		&addr.State,
		&addr.PostalCode,
		&addr.Country,
		&addr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *addressRepository) Create(ctx context.Context, address *model.ShippingAddress) (*model.ShippingAddress, error) {
	query := `
		INSERT INTO shipping_addresses (id, user_id, address_line_1, address_line_2, city, state, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + addressColumns

	created, err := scanAddress(r.pool.QueryRow(ctx, query,
		uuid.New(),
		address.UserID,
		address.AddressLine1,
		address.AddressLine2,
		address.City,
		address.State,
		address.PostalCode,
		address.Country,
	))
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", address.UserID.String()).Msg("failed to create shipping address")
		return nil, fmt.Errorf("failed to create shipping address: %w", err)
	}

	return created, nil
}

func (r *addressRepository) GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error) {
	query := `SELECT ` + addressColumns + ` FROM shipping_addresses WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query shipping addresses")
		return nil, fmt.Errorf("failed to query shipping addresses: %w", err)
	}
	defer rows.Close()

	addresses := []model.ShippingAddress{}
	for rows.Next() {
		var addr model.ShippingAddress
		err := rows.Scan(
			&addr.ID,
			&addr.UserID,
			&addr.AddressLine1,
			&addr.AddressLine2,
			&addr.City,
			&addr.State,
			&addr.PostalCode,
			&addr.Country,
			&addr.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan shipping address row")
			return nil, fmt.Errorf("failed to scan shipping address: %w", err)
		}
		addresses = append(addresses, addr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shipping addresses: %w", err)
	}

	return addresses, nil
}

func (r *addressRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*model.ShippingAddress, error) {
	query := `SELECT ` + addressColumns + ` FROM shipping_addresses WHERE id = $1 AND user_id = $2`

	addr, err := scanAddress(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("address_id", id.String()).Msg("failed to query shipping address")
		return nil, fmt.Errorf("failed to query shipping address: %w", err)
	}

	return addr, nil
}

func (r *addressRepository) Update(ctx context.Context, address *model.ShippingAddress) (*model.ShippingAddress, error) {
	query := `
		UPDATE shipping_addresses
		SET address_line_1 = $3, address_line_2 = $4, city = $5, state = $6, postal_code = $7, country = $8
		WHERE id = $1 AND user_id = $2
		RETURNING ` + addressColumns

	updated, err := scanAddress(r.pool.QueryRow(ctx, query,
		address.ID,
		address.UserID,
		address.AddressLine1,
		address.AddressLine2,
		address.City,
		address.State,
		address.PostalCode,
		address.Country,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("address_id", address.ID.String()).Msg("failed to update shipping address")
		return nil, fmt.Errorf("failed to update shipping address: %w", err)
	}

	return updated, nil
}

func (r *addressRepository) Delete(ctx context.Context, id, userID uuid.UUID) (*model.ShippingAddress, error) {
	query := `DELETE FROM shipping_addresses WHERE id = $1 AND user_id = $2 RETURNING ` + addressColumns

	addr, err := scanAddress(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("address_id", id.String()).Msg("failed to delete shipping address")
		return nil, fmt.Errorf("failed to delete shipping address: %w", err)
	}

	return addr, nil
}
