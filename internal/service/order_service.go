package service

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements the OrderService interface.
type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	couponSvc CouponService
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, couponSvc CouponService, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		couponSvc: couponSvc,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Checkout turns the user's active cart into a pending order. The coupon
// application, the order insert and the cart transition share one
// transaction; any failure rolls the whole checkout back, including the
// coupon usage increment.
func (s *orderService) Checkout(ctx context.Context, userID, cartID uuid.UUID, couponCode *string, cartTotal decimal.Decimal) (*model.Order, error) {
	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	total := cartTotal
	if couponCode != nil && *couponCode != "" {
		var coupon *model.Coupon
		coupon, err = s.couponSvc.Apply(ctx, tx, cartID, *couponCode, cartTotal)
		if err != nil {
			return nil, err
		}
		total = cartTotal.Sub(coupon.Discount(cartTotal))
		if total.IsNegative() {
			total = decimal.Zero
		}
	}

	order, err := s.orderRepo.Create(ctx, tx, cartID, total)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.SetStatus(ctx, tx, cartID, model.CartStatusCompleted)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		err = model.ErrCartUpdateFailed
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit checkout transaction")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("order_id", order.ID.String()).
		Str("total", total.String()).
		Msg("checkout completed")

	return order, nil
}

// CreateOrder creates a pending order directly from a cart id and total.
func (s *orderService) CreateOrder(ctx context.Context, userID, cartID uuid.UUID, total decimal.Decimal) (*model.Order, error) {
	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrOrderEmptyCart
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	order, err := s.orderRepo.Create(ctx, tx, cartID, total)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit create order transaction")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("order_id", order.ID.String()).
		Msg("order created")

	return order, nil
}

// GetOrder returns the order when it exists and belongs to the user. An
// order owned by someone else is reported the same way as a missing one.
func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// GetUserOrders returns the user's orders, most recent first.
func (s *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.GetAllForUser(ctx, userID)
}

// CancelOrder cancels the user's order and moves its cart to abandoned in
// one transaction.
func (s *orderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, model.ErrOrderNotFound
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	cancelled, err := s.orderRepo.Cancel(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if cancelled == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}

	cart, err := s.cartRepo.SetStatus(ctx, tx, order.CartID, model.CartStatusAbandoned)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		err = model.ErrCartUpdateFailed
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit cancel order transaction")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("order_id", orderID.String()).
		Msg("order cancelled")

	return cancelled, nil
}
