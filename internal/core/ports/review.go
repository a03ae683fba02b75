package ports

import (
	"context"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

// ReviewRepository defines persistence operations for seller reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	FindByAuthorAndSeller(ctx context.Context, author, seller string) (*domain.Review, error)
	ListBySeller(ctx context.Context, seller string) ([]*domain.Review, error)
	Delete(ctx context.Context, id string) error
}

// ReviewService defines use-case operations for seller reviews.
type ReviewService interface {
	CreateReview(ctx context.Context, author, seller string, rating int, comment string) (*domain.Review, error)
	GetReview(ctx context.Context, id string) (*domain.Review, error)
	ListSellerReviews(ctx context.Context, seller string) ([]*domain.Review, error)
	DeleteReview(ctx context.Context, id string) error
}
