package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

// MockCartRepository is a mock implementation of repository.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) GetActiveCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*model.Cart); ok {
		return cart, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) GetActiveCartForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, tx, userID)
	if cart, ok := args.Get(0).(*model.Cart); ok {
		return cart, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) GetOrCreateActiveCart(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, tx, userID)
	if cart, ok := args.Get(0).(*model.Cart); ok {
		return cart, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) AddItem(ctx context.Context, tx pgx.Tx, cartID, productID uuid.UUID, quantity int, priceAtAddition decimal.Decimal) (*model.CartItem, error) {
	args := m.Called(ctx, tx, cartID, productID, quantity, priceAtAddition)
	if item, ok := args.Get(0).(*model.CartItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) UpdateItemQuantity(ctx context.Context, tx pgx.Tx, cartID, productID uuid.UUID, quantity int) (*model.CartItem, error) {
	args := m.Called(ctx, tx, cartID, productID, quantity)
	if item, ok := args.Get(0).(*model.CartItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, tx pgx.Tx, cartID, productID uuid.UUID) (*model.CartItem, error) {
	args := m.Called(ctx, tx, cartID, productID)
	if item, ok := args.Get(0).(*model.CartItem); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) RecomputeTotal(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, cartID)
	if total, ok := args.Get(0).(decimal.Decimal); ok {
		return total, args.Error(1)
	}
	return decimal.Zero, args.Error(1)
}

func (m *MockCartRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error) {
	args := m.Called(ctx, userID)
	if items, ok := args.Get(0).([]model.CartItemDetail); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) SetStatus(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, status string) (*model.Cart, error) {
	args := m.Called(ctx, tx, cartID, status)
	if cart, ok := args.Get(0).(*model.Cart); ok {
		return cart, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCouponRepository is a mock implementation of repository.CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	args := m.Called(ctx, coupon)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	args := m.Called(ctx, code)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponRepository) Update(ctx context.Context, id uuid.UUID, update model.CouponUpdate) (*model.Coupon, error) {
	args := m.Called(ctx, id, update)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponRepository) ApplyToCart(ctx context.Context, tx pgx.Tx, cartID, couponID uuid.UUID) (*model.CartCoupon, error) {
	args := m.Called(ctx, tx, cartID, couponID)
	if cc, ok := args.Get(0).(*model.CartCoupon); ok {
		return cc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, tx, couponID)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, total decimal.Decimal) (*model.Order, error) {
	args := m.Called(ctx, tx, cartID, total)
	if order, ok := args.Get(0).(*model.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*model.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]model.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Cancel(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, tx, id)
	if order, ok := args.Get(0).(*model.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if products, ok := args.Get(0).([]model.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*model.Product); ok {
		return product, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	args := m.Called(ctx, product)
	if p, ok := args.Get(0).(*model.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id uuid.UUID, update model.ProductUpdate) (*model.Product, error) {
	args := m.Called(ctx, id, update)
	if p, ok := args.Get(0).(*model.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*model.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update model.UserUpdate) (*model.User, error) {
	args := m.Called(ctx, id, update)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) CreateRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockUserRepository) FindRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	args := m.Called(ctx, token)
	if rt, ok := args.Get(0).(*model.RefreshToken); ok {
		return rt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockCouponService is a mock implementation of CouponService.
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) Validate(ctx context.Context, code string, cartTotal decimal.Decimal) (*model.Coupon, error) {
	args := m.Called(ctx, code, cartTotal)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponService) Apply(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, code string, cartTotal decimal.Decimal) (*model.Coupon, error) {
	args := m.Called(ctx, tx, cartID, code, cartTotal)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponService) Create(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error) {
	args := m.Called(ctx, coupon)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, id uuid.UUID, update model.CouponUpdate) (*model.Coupon, error) {
	args := m.Called(ctx, id, update)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponService) Delete(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*model.Coupon); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
