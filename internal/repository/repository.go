package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CartRepository defines data access for carts and their line items.
// Write operations take a pgx.Tx so the service layer can group a cart
// mutation and the total recomputation (or a whole checkout) into one
// atomic unit.
type CartRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetActiveCart returns the user's active cart, or nil if none exists.
	GetActiveCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// GetActiveCartForUpdate returns the user's active cart locked for the
	// duration of the transaction, or nil if none exists.
	GetActiveCartForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error)

	// GetOrCreateActiveCart returns the user's active cart, creating it if
	// absent, and locks the row for the duration of the transaction. The
	// insert relies on the partial unique index on (user_id) WHERE
	// status = 'active', so concurrent calls converge on a single cart.
	GetOrCreateActiveCart(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error)

	// AddItem inserts a line item with the given price snapshot.
	AddItem(ctx context.Context, tx pgx.Tx, cartID, productID uuid.UUID, quantity int, priceAtAddition decimal.Decimal) (*model.CartItem, error)

	// UpdateItemQuantity overwrites the quantity of the matching line item.
	// Returns nil if no item matches the cart/product pair.
	UpdateItemQuantity(ctx context.Context, tx pgx.Tx, cartID, productID uuid.UUID, quantity int) (*model.CartItem, error)

	// RemoveItem deletes the matching line item. Returns nil if nothing matched.
	RemoveItem(ctx context.Context, tx pgx.Tx, cartID, productID uuid.UUID) (*model.CartItem, error)

	// RecomputeTotal re-sums price_at_addition * quantity over the cart's
	// items and persists the result as the cart total.
	RecomputeTotal(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) (decimal.Decimal, error)

	// ListItems returns the user's active cart items joined with product
	// name and current price. Empty slice when the cart is empty or absent.
	ListItems(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error)

	// SetStatus transitions the cart to the given status. Returns nil if the
	// cart does not exist. No transition table is enforced here; callers own
	// the lifecycle rules.
	SetStatus(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, status string) (*model.Cart, error)
}

// CouponRepository defines data access for coupons and their cart join records.
type CouponRepository interface {
	// Create inserts a new coupon.
	Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error)

	// GetByCode returns the coupon with the given code, or nil if unknown.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// Update applies the non-nil fields of the update. Returns nil if the
	// coupon does not exist.
	Update(ctx context.Context, id uuid.UUID, update model.CouponUpdate) (*model.Coupon, error)

	// Delete removes the coupon. Returns nil if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// ApplyToCart records the coupon application on a cart.
	ApplyToCart(ctx context.Context, tx pgx.Tx, cartID, couponID uuid.UUID) (*model.CartCoupon, error)

	// IncrementUsage atomically advances times_used, guarded by the usage
	// limit in the same statement. Returns nil when the limit is already
	// reached, so concurrent applications can never jointly exceed it.
	IncrementUsage(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) (*model.Coupon, error)
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a pending order for the given cart and total.
	Create(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, total decimal.Decimal) (*model.Order, error)

	// GetByID returns the order joined with the owning user id and cart
	// status, or nil if absent. Ownership is enforced by the service.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetAllForUser returns the user's orders, most recent first.
	GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// Cancel sets the order status to cancelled. Returns nil if absent.
	Cancel(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)
}

// ProductRepository defines data access for catalogue products.
type ProductRepository interface {
	// GetAll retrieves products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product, or nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) (*model.Product, error)

	// Update applies the non-nil fields of the update. Returns nil if absent.
	Update(ctx context.Context, id uuid.UUID, update model.ProductUpdate) (*model.Product, error)

	// Delete removes the product. Returns nil if absent.
	Delete(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// CategoryRepository defines data access for product categories.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, name, description string) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

// UserRepository defines data access for users and their refresh tokens.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// GetByEmail returns the user with the given email, or nil if unknown.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID returns the user, or nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// UpdateProfile applies the non-nil fields of the update. Returns nil
	// if the user does not exist.
	UpdateProfile(ctx context.Context, id uuid.UUID, update model.UserUpdate) (*model.User, error)

	// CreateRefreshToken persists a refresh token for the user.
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, token string) error

	// FindRefreshToken returns the stored refresh token row, or nil if the
	// token was never issued or has been revoked.
	FindRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error)

	// DeleteRefreshToken removes a stored refresh token.
	DeleteRefreshToken(ctx context.Context, token string) error
}

// AddressRepository defines data access for shipping addresses. Every
// operation is scoped by the owning user id.
type AddressRepository interface {
	Create(ctx context.Context, address *model.ShippingAddress) (*model.ShippingAddress, error)
	GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*model.ShippingAddress, error)
	Update(ctx context.Context, address *model.ShippingAddress) (*model.ShippingAddress, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (*model.ShippingAddress, error)
}
