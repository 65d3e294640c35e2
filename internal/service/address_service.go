package service

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// addressService implements the AddressService interface.
type addressService struct {
	addressRepo repository.AddressRepository
	logger      zerolog.Logger
}

// NewAddressService creates a new shipping address service.
func NewAddressService(addressRepo repository.AddressRepository, logger zerolog.Logger) AddressService {
	return &addressService{
		addressRepo: addressRepo,
		logger:      logger.With().Str("service", "address").Logger(),
	}
}

func (s *addressService) Create(ctx context.Context, address *model.ShippingAddress) (*model.ShippingAddress, error) {
	created, err := s.addressRepo.Create(ctx, address)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("address_id", created.ID.String()).
		Str("user_id", created.UserID.String()).
		Msg("shipping address created")

	return created, nil
}

func (s *addressService) GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error) {
	return s.addressRepo.GetAllForUser(ctx, userID)
}

func (s *addressService) GetByID(ctx context.Context, id, userID uuid.UUID) (*model.ShippingAddress, error) {
	address, err := s.addressRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, model.ErrAddressNotFound
	}
	return address, nil
}

func (s *addressService) Update(ctx context.Context, address *model.ShippingAddress) (*model.ShippingAddress, error) {
	updated, err := s.addressRepo.Update(ctx, address)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.ErrAddressNotFound
	}
	return updated, nil
}

func (s *addressService) Delete(ctx context.Context, id, userID uuid.UUID) (*model.ShippingAddress, error) {
	address, err := s.addressRepo.Delete(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, model.ErrAddressNotFound
	}

	s.logger.Info().Str("address_id", id.String()).Msg("shipping address deleted")
	return address, nil
}
