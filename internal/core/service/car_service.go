package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CarService implements the listing use-cases.
type CarService struct {
	repo   ports.CarRepository
	logger zerolog.Logger
}

func NewCarService(repo ports.CarRepository, logger zerolog.Logger) *CarService {
	return &CarService{repo: repo, logger: logger}
}

// CreateCar publishes a listing for the given owner in the available state.
func (s *CarService) CreateCar(ctx context.Context, input ports.CreateCarInput) (*domain.Car, error) {
	now := time.Now().UTC()
	car := &domain.Car{
		Owner:       input.Owner,
		Make:        input.Make,
		Model:       input.Model,
		Year:        input.Year,
		PriceCents:  input.PriceCents,
		MileageKm:   input.MileageKm,
		Status:      domain.CarAvailable,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, car); err != nil {
		s.logger.Error().Err(err).Msg("failed to create car listing")
		return nil, err
	}

	s.logger.Info().Str("car_id", car.ID).Str("owner", car.Owner).Msg("car listed")
	return car, nil
}

func (s *CarService) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateCar applies the non-nil fields of input. A status change must be a
// valid transition in the listing state machine.
func (s *CarService) UpdateCar(ctx context.Context, id string, input ports.UpdateCarInput) (*domain.Car, error) {
	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PriceCents != nil {
		car.PriceCents = *input.PriceCents
	}
	if input.MileageKm != nil {
		car.MileageKm = *input.MileageKm
	}
	if input.Description != nil {
		car.Description = *input.Description
	}
	if input.Status != nil {
		next := domain.CarStatus(*input.Status)
		if next != car.Status {
			if !car.Status.CanTransitionTo(next) {
				return nil, domain.ErrInvalidTransition
			}
			car.Status = next
		}
	}
	car.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (s *CarService) DeleteCar(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListCars returns a page of listings. Limits are normalised and capped.
func (s *CarService) ListCars(ctx context.Context, filter ports.ListCarsFilter) (*ports.ListCarsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListCarsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}
