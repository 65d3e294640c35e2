package service

import (
	"context"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// authService implements the AuthService interface.
type authService struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, bcryptCost int, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new user account with a bcrypt password hash.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID.String()).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues an access/refresh token pair. The
// refresh token is persisted so it can be rotated or revoked later.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token. The presented token must both verify
// cryptographically and still be stored; the old token is revoked before the
// replacement pair is issued.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	stored, err := s.userRepo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.UserID != userID {
		return nil, model.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrInvalidToken
	}

	if err := s.userRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a stored refresh token. Revoking an unknown token is a
// no-op.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.userRepo.DeleteRefreshToken(ctx, refreshToken)
}

// GetProfile returns the user's profile.
func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of the update.
func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, update model.UserUpdate) (*model.User, error) {
	user, err := s.userRepo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*AuthResult, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue access token")
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue refresh token")
		return nil, err
	}

	if err := s.userRepo.CreateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
