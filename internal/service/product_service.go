package service

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements the ProductService interface.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.productRepo.GetAll(ctx, limit, offset)
}

// GetByID retrieves a single product.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Create inserts a new product after checking its category exists.
func (s *productService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.Price.IsNegative() {
		return nil, model.NewValidationError("Price cannot be negative")
	}

	category, err := s.categoryRepo.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID.String()).Msg("product created")
	return created, nil
}

// Update applies the non-nil fields of the update.
func (s *productService) Update(ctx context.Context, id uuid.UUID, update model.ProductUpdate) (*model.Product, error) {
	if update.Price != nil && update.Price.IsNegative() {
		return nil, model.NewValidationError("Price cannot be negative")
	}
	if update.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *update.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, model.ErrCategoryNotFound
		}
	}

	product, err := s.productRepo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Delete removes the product.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return product, nil
}

// GetAllCategories returns every category.
func (s *productService) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// GetCategoryByID retrieves a single category.
func (s *productService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

// CreateCategory inserts a new category.
func (s *productService) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.Name == "" {
		return nil, model.NewValidationError("Category name is required")
	}

	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", created.ID.String()).Msg("category created")
	return created, nil
}

// UpdateCategory overwrites the category's name and description.
func (s *productService) UpdateCategory(ctx context.Context, id uuid.UUID, name, description string) (*model.Category, error) {
	if name == "" {
		return nil, model.NewValidationError("Category name is required")
	}

	category, err := s.categoryRepo.Update(ctx, id, name, description)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

// DeleteCategory removes the category.
func (s *productService) DeleteCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	s.logger.Info().Str("category_id", id.String()).Msg("category deleted")
	return category, nil
}
