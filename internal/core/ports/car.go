package ports

import (
	"context"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

// ListCarsFilter carries all query parameters for listing cars.
type ListCarsFilter struct {
	Owner         string // optional: scope to one seller's listings
	Make          string // optional: filter by make
	Status        string // optional: filter by listing status
	MaxPriceCents int64  // optional: price ceiling, 0 = unbounded
	Page          int    // 1-based
	Limit         int    // max rows per page (capped at 100 by the service)
}

// CarRepository defines persistence operations for car listings.
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	FindByID(ctx context.Context, id string) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id string) error
	// List returns a page of cars matching filter and the total count.
	List(ctx context.Context, filter ListCarsFilter) ([]*domain.Car, int64, error)
}

// CreateCarInput carries the data needed to publish a listing.
type CreateCarInput struct {
	Owner       string
	Make        string
	Model       string
	Year        int
	PriceCents  int64
	MileageKm   int
	Description string
}

// UpdateCarInput carries the mutable listing fields. Nil pointers mean
// "leave unchanged".
type UpdateCarInput struct {
	PriceCents  *int64
	MileageKm   *int
	Description *string
	Status      *string
}

// ListCarsResult is returned by ListCars.
type ListCarsResult struct {
	Items      []*domain.Car
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CarService defines use-case operations for car listings.
type CarService interface {
	CreateCar(ctx context.Context, input CreateCarInput) (*domain.Car, error)
	GetCar(ctx context.Context, id string) (*domain.Car, error)
	UpdateCar(ctx context.Context, id string, input UpdateCarInput) (*domain.Car, error)
	DeleteCar(ctx context.Context, id string) error
	ListCars(ctx context.Context, filter ListCarsFilter) (*ListCarsResult, error)
}
