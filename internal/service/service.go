package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CartService defines operations on the caller's active cart.
type CartService interface {
	// AddItem adds a product to the user's active cart, creating the cart
	// if absent. The product's current price is snapshotted on the item.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartItem, error)

	// UpdateItem overwrites the quantity of the matching line item.
	// Returns nil when no active cart or item exists.
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartItem, error)

	// RemoveItem deletes the matching line item. Returns nil when no active
	// cart or item exists.
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*model.CartItem, error)

	// ListItems returns the user's active cart items with product metadata.
	ListItems(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error)
}

// CouponService defines coupon validation, application and admin management.
type CouponService interface {
	// Validate checks a code against the cart total. Check order: unknown
	// code, usage limit, expiration, minimum order value.
	Validate(ctx context.Context, code string, cartTotal decimal.Decimal) (*model.Coupon, error)

	// Apply re-validates and records the application inside the caller's
	// transaction: a cart_coupons row plus the atomic usage increment.
	Apply(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, code string, cartTotal decimal.Decimal) (*model.Coupon, error)

	// Create inserts a new coupon (admin).
	Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error)

	// Update applies the non-nil fields of the update (admin).
	Update(ctx context.Context, id uuid.UUID, update model.CouponUpdate) (*model.Coupon, error)

	// Delete removes a coupon (admin).
	Delete(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
}

// OrderService defines checkout and order management for a user.
type OrderService interface {
	// Checkout turns the user's active cart into a pending order. The
	// coupon application, order insert and cart transition run in a single
	// transaction; a failure at any step leaves no partial state behind.
	Checkout(ctx context.Context, userID, cartID uuid.UUID, couponCode *string, cartTotal decimal.Decimal) (*model.Order, error)

	// CreateOrder creates an order directly from a cart id and total.
	CreateOrder(ctx context.Context, userID, cartID uuid.UUID, total decimal.Decimal) (*model.Order, error)

	// GetOrder returns the order if it exists and belongs to the user,
	// nil otherwise.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error)

	// GetUserOrders returns the user's orders, most recent first.
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// CancelOrder cancels the user's order and moves its cart to abandoned,
	// atomically.
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error)
}

// AuthResult carries the outcome of a successful login or token refresh.
type AuthResult struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

// AuthService defines registration, login and the refresh token lifecycle.
type AuthService interface {
	// Register creates a new user account.
	Register(ctx context.Context, username, email, password string) (*model.User, error)

	// Login verifies credentials and issues an access/refresh token pair.
	// The refresh token is persisted until rotated or revoked.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Refresh rotates a refresh token: the presented token must verify and
	// still be stored; it is replaced by a freshly issued pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)

	// Logout revokes a stored refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// GetProfile returns the user's profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)

	// UpdateProfile applies the non-nil fields of the update.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update model.UserUpdate) (*model.User, error)
}

// ProductService defines catalogue operations for products and categories.
type ProductService interface {
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, update model.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Product, error)

	GetAllCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name, description string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

// AddressService defines shipping address operations scoped to a user.
type AddressService interface {
	Create(ctx context.Context, address *model.ShippingAddress) (*model.ShippingAddress, error)
	GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*model.ShippingAddress, error)
	Update(ctx context.Context, address *model.ShippingAddress) (*model.ShippingAddress, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (*model.ShippingAddress, error)
}
