package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is created from a cart at checkout. Total is the finalised,
// post-discount amount. UserID and CartStatus are populated from the cart
// join on reads; ownership checks in the service rely on UserID.
type Order struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	CartID     uuid.UUID       `json:"cartId" db:"cart_id"`
	Status     string          `json:"status" db:"status"`
	Total      decimal.Decimal `json:"total" db:"total"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UserID     uuid.UUID       `json:"userId,omitempty" db:"user_id"`
	CartStatus string          `json:"cartStatus,omitempty" db:"cart_status"`
}
