package model

import (
	"time"

	"github.com/google/uuid"
)

// ShippingAddress is a delivery address owned by a user.
type ShippingAddress struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"userId" db:"user_id"`
	AddressLine1 string    `json:"addressLine1" db:"address_line_1"`
	AddressLine2 string    `json:"addressLine2,omitempty" db:"address_line_2"`
	City         string    `json:"city" db:"city"`
	State        string    `json:"state,omitempty" db:"state"`
	PostalCode   string    `json:"postalCode,omitempty" db:"postal_code"`
	Country      string    `json:"country" db:"country"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
