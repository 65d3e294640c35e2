package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered customer or administrator.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// UserUpdate holds the allow-listed profile fields a user may change.
// Nil fields are left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
}

// RefreshToken is a rotating credential bound to a user. The token value is
// replaced on every refresh and deleted on logout.
type RefreshToken struct {
	ID        uuid.UUID `json:"-" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}
