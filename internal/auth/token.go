package auth

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that fail parsing, signature
// verification or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity resolved from a valid access token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// TokenManager issues and verifies HS256 access and refresh tokens.
// Refresh tokens are additionally persisted by the auth service; a refresh
// token that verifies here but has no stored row is still rejected.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager creates a token manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// IssueAccessToken signs a short-lived access token for the user.
func (m *TokenManager) IssueAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   now.Add(m.accessTTL).Unix(),
		"iat":   now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

// ParseAccessToken verifies an access token and returns the caller identity.
func (m *TokenManager) ParseAccessToken(tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString, m.accessSecret)
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &Claims{UserID: userID, Email: email, Role: role}, nil
}

// IssueRefreshToken signs a long-lived refresh token bound to the user id.
func (m *TokenManager) IssueRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"jti": uuid.NewString(),
		"exp": now.Add(m.refreshTTL).Unix(),
		"iat": now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, nil
}

// ParseRefreshToken verifies a refresh token and returns the owning user id.
func (m *TokenManager) ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	claims, err := m.parse(tokenString, m.refreshSecret)
	if err != nil {
		return uuid.Nil, err
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

func (m *TokenManager) parse(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
