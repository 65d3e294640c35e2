package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart statuses. A user has at most one active cart; checkout moves it to
// completed, order cancellation to abandoned.
const (
	CartStatusActive    = "active"
	CartStatusCompleted = "completed"
	CartStatusAbandoned = "abandoned"
)

// Cart is a user's shopping cart. Total is denormalised and recomputed from
// the line items after every mutation.
type Cart struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"userId" db:"user_id"`
	Status    string          `json:"status" db:"status"`
	Total     decimal.Decimal `json:"total" db:"total"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// CartItem is a line item in a cart. PriceAtAddition snapshots the product
// price at add-to-cart time so the cart total is insulated from later
// catalogue price changes.
type CartItem struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	CartID          uuid.UUID       `json:"cartId" db:"cart_id"`
	ProductID       uuid.UUID       `json:"productId" db:"product_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	PriceAtAddition decimal.Decimal `json:"priceAtAddition" db:"price_at_addition"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// CartItemDetail is a cart item joined with product metadata for display.
type CartItemDetail struct {
	CartItem
	ProductName  string          `json:"productName" db:"name"`
	CurrentPrice decimal.Decimal `json:"currentPrice" db:"price"`
}
