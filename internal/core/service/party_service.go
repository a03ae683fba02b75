package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// SellerService implements seller profile use-cases.
type SellerService struct {
	repo   ports.SellerRepository
	logger zerolog.Logger
}

func NewSellerService(repo ports.SellerRepository, logger zerolog.Logger) *SellerService {
	return &SellerService{repo: repo, logger: logger}
}

func (s *SellerService) CreateSeller(ctx context.Context, username string, input ports.ProfileInput) (*domain.Seller, error) {
	now := time.Now().UTC()
	seller := &domain.Seller{
		Username:  username,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		City:      input.City,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(ctx, seller)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", username).Msg("seller profile created")
	return created, nil
}

func (s *SellerService) GetSeller(ctx context.Context, username string) (*domain.Seller, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *SellerService) UpdateSeller(ctx context.Context, username string, input ports.ProfileInput) (*domain.Seller, error) {
	seller, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	applyProfile(&seller.Name, &seller.Email, &seller.Phone, input)
	if input.City != "" {
		seller.City = input.City
	}
	seller.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

func (s *SellerService) DeleteSeller(ctx context.Context, username string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err != nil {
		return err
	}
	return s.repo.Delete(ctx, username)
}

// BuyerService implements buyer profile use-cases.
type BuyerService struct {
	repo   ports.BuyerRepository
	logger zerolog.Logger
}

func NewBuyerService(repo ports.BuyerRepository, logger zerolog.Logger) *BuyerService {
	return &BuyerService{repo: repo, logger: logger}
}

func (s *BuyerService) CreateBuyer(ctx context.Context, username string, input ports.ProfileInput) (*domain.Buyer, error) {
	now := time.Now().UTC()
	buyer := &domain.Buyer{
		Username:  username,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(ctx, buyer)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", username).Msg("buyer profile created")
	return created, nil
}

func (s *BuyerService) GetBuyer(ctx context.Context, username string) (*domain.Buyer, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *BuyerService) UpdateBuyer(ctx context.Context, username string, input ports.ProfileInput) (*domain.Buyer, error) {
	buyer, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	applyProfile(&buyer.Name, &buyer.Email, &buyer.Phone, input)
	buyer.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, buyer); err != nil {
		return nil, err
	}
	return buyer, nil
}

func (s *BuyerService) DeleteBuyer(ctx context.Context, username string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err != nil {
		return err
	}
	return s.repo.Delete(ctx, username)
}

func (s *BuyerService) ListBuyers(ctx context.Context, page, limit int) ([]*domain.Buyer, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.repo.List(ctx, page, limit)
}

// applyProfile copies the non-empty shared profile fields.
func applyProfile(name, email, phone *string, input ports.ProfileInput) {
	if input.Name != "" {
		*name = input.Name
	}
	if input.Email != "" {
		*email = input.Email
	}
	if input.Phone != "" {
		*phone = input.Phone
	}
}
