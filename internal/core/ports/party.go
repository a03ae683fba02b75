package ports

import (
	"context"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

// SellerRepository defines persistence operations for seller profiles.
type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) (*domain.Seller, error)
	FindByUsername(ctx context.Context, username string) (*domain.Seller, error)
	Update(ctx context.Context, seller *domain.Seller) error
	Delete(ctx context.Context, username string) error
}

// BuyerRepository defines persistence operations for buyer profiles.
type BuyerRepository interface {
	Create(ctx context.Context, buyer *domain.Buyer) (*domain.Buyer, error)
	FindByUsername(ctx context.Context, username string) (*domain.Buyer, error)
	Update(ctx context.Context, buyer *domain.Buyer) error
	Delete(ctx context.Context, username string) error
	List(ctx context.Context, page, limit int) ([]*domain.Buyer, int64, error)
}

// ProfileInput carries the mutable fields of a buyer or seller profile.
type ProfileInput struct {
	Name  string
	Email string
	Phone string
	City  string
}

// SellerService defines use-case operations for seller profiles.
type SellerService interface {
	CreateSeller(ctx context.Context, username string, input ProfileInput) (*domain.Seller, error)
	GetSeller(ctx context.Context, username string) (*domain.Seller, error)
	UpdateSeller(ctx context.Context, username string, input ProfileInput) (*domain.Seller, error)
	DeleteSeller(ctx context.Context, username string) error
}

// BuyerService defines use-case operations for buyer profiles.
type BuyerService interface {
	CreateBuyer(ctx context.Context, username string, input ProfileInput) (*domain.Buyer, error)
	GetBuyer(ctx context.Context, username string) (*domain.Buyer, error)
	UpdateBuyer(ctx context.Context, username string, input ProfileInput) (*domain.Buyer, error)
	DeleteBuyer(ctx context.Context, username string) error
	ListBuyers(ctx context.Context, page, limit int) ([]*domain.Buyer, int64, error)
}
