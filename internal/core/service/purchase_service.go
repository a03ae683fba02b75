package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/api/metrics"
	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// PurchaseService implements the purchase lifecycle. Creating a purchase
// reserves the car; completing it marks the car sold; cancelling releases
// the car back to available.
type PurchaseService struct {
	purchases ports.PurchaseRepository
	cars      ports.CarRepository
	logger    zerolog.Logger
}

func NewPurchaseService(purchases ports.PurchaseRepository, cars ports.CarRepository, logger zerolog.Logger) *PurchaseService {
	return &PurchaseService{purchases: purchases, cars: cars, logger: logger}
}

// CreatePurchase opens a pending purchase on an available car and reserves it.
func (s *PurchaseService) CreatePurchase(ctx context.Context, buyer, carID string) (*domain.Purchase, error) {
	car, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.Status != domain.CarAvailable {
		return nil, domain.ErrCarUnavailable
	}

	now := time.Now().UTC()
	purchase := &domain.Purchase{
		Reference:   uuid.NewString(),
		CarID:       car.ID,
		Buyer:       buyer,
		Seller:      car.Owner,
		PriceCents:  car.PriceCents,
		Status:      domain.PurchasePending,
		PurchasedAt: now,
		UpdatedAt:   now,
	}

	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, err
	}

	car.Status = domain.CarReserved
	car.UpdatedAt = now
	if err := s.cars.Update(ctx, car); err != nil {
		s.logger.Error().Err(err).Str("car_id", car.ID).Msg("failed to reserve car after purchase creation")
		return nil, err
	}

	s.logger.Info().
		Str("reference", purchase.Reference).
		Str("car_id", car.ID).
		Str("buyer", buyer).
		Msg("purchase created")
	metrics.PurchasesTotal.WithLabelValues(string(domain.PurchasePending)).Inc()

	return purchase, nil
}

func (s *PurchaseService) GetPurchase(ctx context.Context, reference string) (*domain.Purchase, error) {
	return s.purchases.FindByReference(ctx, reference)
}

// CompletePurchase finalizes a pending purchase and marks the car sold.
func (s *PurchaseService) CompletePurchase(ctx context.Context, reference string) (*domain.Purchase, error) {
	return s.finalize(ctx, reference, domain.PurchaseCompleted, domain.CarSold)
}

// CancelPurchase aborts a pending purchase and releases the car.
func (s *PurchaseService) CancelPurchase(ctx context.Context, reference string) (*domain.Purchase, error) {
	return s.finalize(ctx, reference, domain.PurchaseCancelled, domain.CarAvailable)
}

func (s *PurchaseService) finalize(ctx context.Context, reference string, status domain.PurchaseStatus, carStatus domain.CarStatus) (*domain.Purchase, error) {
	purchase, err := s.purchases.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchasePending {
		return nil, domain.ErrPurchaseFinalized
	}

	now := time.Now().UTC()
	purchase.Status = status
	purchase.UpdatedAt = now
	if err := s.purchases.Update(ctx, purchase); err != nil {
		return nil, err
	}

	car, err := s.cars.FindByID(ctx, purchase.CarID)
	if err == nil && car.Status.CanTransitionTo(carStatus) {
		car.Status = carStatus
		car.UpdatedAt = now
		if err := s.cars.Update(ctx, car); err != nil {
			s.logger.Error().Err(err).Str("car_id", car.ID).Msg("failed to update car after purchase finalize")
		}
	}

	s.logger.Info().Str("reference", reference).Str("status", string(status)).Msg("purchase finalized")
	metrics.PurchasesTotal.WithLabelValues(string(status)).Inc()

	return purchase, nil
}

// ListPurchases returns a page of purchases. An empty buyer lists all
// purchases; the handler restricts that to admins.
func (s *PurchaseService) ListPurchases(ctx context.Context, buyer string, page, limit int) ([]*domain.Purchase, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.purchases.ListByBuyer(ctx, buyer, page, limit)
}
