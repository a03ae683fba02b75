package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// ReviewService implements seller review use-cases.
type ReviewService struct {
	reviews ports.ReviewRepository
	sellers ports.SellerRepository
	logger  zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, sellers ports.SellerRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, sellers: sellers, logger: logger}
}

// CreateReview records a buyer's rating of a seller. One review per
// author+seller pair.
func (s *ReviewService) CreateReview(ctx context.Context, author, seller string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	if _, err := s.sellers.FindByUsername(ctx, seller); err != nil {
		return nil, err
	}
	if _, err := s.reviews.FindByAuthorAndSeller(ctx, author, seller); err == nil {
		return nil, domain.ErrReviewExists
	} else if !errors.Is(err, domain.ErrReviewNotFound) {
		return nil, err
	}

	review := &domain.Review{
		Seller:    seller,
		Author:    author,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("seller", seller).Str("author", author).Int("rating", rating).Msg("review created")
	return created, nil
}

func (s *ReviewService) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

func (s *ReviewService) ListSellerReviews(ctx context.Context, seller string) ([]*domain.Review, error) {
	return s.reviews.ListBySeller(ctx, seller)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	if _, err := s.reviews.FindByID(ctx, id); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}
