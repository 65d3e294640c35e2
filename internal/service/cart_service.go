package service

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements the CartService interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// AddItem adds a product to the user's active cart, creating the cart when
// absent. The cart row stays locked while the item is inserted and the total
// recomputed, so concurrent additions serialise instead of clobbering the
// total.
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, model.NewValidationError("Quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	cart, err := s.cartRepo.GetOrCreateActiveCart(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.AddItem(ctx, tx, cart.ID, productID, quantity, product.Price)
	if err != nil {
		return nil, err
	}

	if _, err = s.cartRepo.RecomputeTotal(ctx, tx, cart.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit add item transaction")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Msg("item added to cart")

	return item, nil
}

// UpdateItem overwrites the quantity of the matching line item in the user's
// active cart. Returns nil when the user has no active cart or the item is
// not in it.
func (s *cartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, model.NewValidationError("Quantity must be at least 1")
	}

	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	cart, err := s.cartRepo.GetActiveCartForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		_ = tx.Rollback(ctx)
		return nil, nil
	}

	item, err := s.cartRepo.UpdateItemQuantity(ctx, tx, cart.ID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if item == nil {
		_ = tx.Rollback(ctx)
		return nil, nil
	}

	if _, err = s.cartRepo.RecomputeTotal(ctx, tx, cart.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit update item transaction")
		return nil, err
	}

	return item, nil
}

// RemoveItem deletes the matching line item from the user's active cart.
// Returns nil when the user has no active cart or the item is not in it.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*model.CartItem, error) {
	tx, err := s.cartRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	cart, err := s.cartRepo.GetActiveCartForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		_ = tx.Rollback(ctx)
		return nil, nil
	}

	item, err := s.cartRepo.RemoveItem(ctx, tx, cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		_ = tx.Rollback(ctx)
		return nil, nil
	}

	if _, err = s.cartRepo.RecomputeTotal(ctx, tx, cart.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit remove item transaction")
		return nil, err
	}

	return item, nil
}

// ListItems returns the user's active cart items with product metadata.
func (s *cartService) ListItems(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error) {
	return s.cartRepo.ListItems(ctx, userID)
}
