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

const userColumns = "id, username, email, password, role, created_at"

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (id, username, email, password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	role := user.Role
	if role == "" {
		role = model.RoleUser
	}

	created, err := scanUser(r.pool.QueryRow(ctx, query, uuid.New(), user.Username, user.Email, user.PasswordHash, role))
	if err != nil {
		r.logger.Error().Err(err).Str("email", user.Email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info().Str("user_id", created.ID.String()).Msg("user created")

	return created, nil
}

// GetByEmail returns the user with the given email, or nil if unknown.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query user by email")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// GetByID returns the user, or nil if absent.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the non-nil fields of the update. Column names come
// from a fixed allow-list here, never from caller input.
func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update model.UserUpdate) (*model.User, error) {
	setClauses := make([]string, 0, 2)
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Username != nil {
		addSet("username", *update.Username)
	}
	if update.Email != nil {
		addSet("email", *update.Email)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $1 RETURNING %s",
		strings.Join(setClauses, ", "),
		userColumns,
	)

	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update user profile")
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	return user, nil
}

// CreateRefreshToken persists a refresh token for the user.
func (r *userRepository) CreateRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	query := `INSERT INTO refresh_tokens (id, user_id, token) VALUES ($1, $2, $3)`

	if _, err := r.pool.Exec(ctx, query, uuid.New(), userID, token); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to store refresh token")
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// FindRefreshToken returns the stored refresh token row, or nil if revoked
// or never issued.
func (r *userRepository) FindRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	query := `SELECT id, user_id, token, created_at FROM refresh_tokens WHERE token = $1`

	var rt model.RefreshToken
	err := r.pool.QueryRow(ctx, query, token).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query refresh token")
		return nil, fmt.Errorf("failed to query refresh token: %w", err)
	}

	return &rt, nil
}

// DeleteRefreshToken removes a stored refresh token.
func (r *userRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`

	if _, err := r.pool.Exec(ctx, query, token); err != nil {
		r.logger.Error().Err(err).Msg("failed to delete refresh token")
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}
