package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

type stubCarRepo struct {
	cars   map[string]*domain.Car
	nextID int
}

func newStubCarRepo() *stubCarRepo {
	return &stubCarRepo{cars: make(map[string]*domain.Car)}
}

func cloneCar(c *domain.Car) *domain.Car {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCarRepo) Create(_ context.Context, car *domain.Car) error {
	r.nextID++
	car.ID = fmt.Sprintf("car_%d", r.nextID)
	r.cars[car.ID] = cloneCar(car)
	return nil
}

func (r *stubCarRepo) FindByID(_ context.Context, id string) (*domain.Car, error) {
	car, ok := r.cars[id]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	return cloneCar(car), nil
}

func (r *stubCarRepo) Update(_ context.Context, car *domain.Car) error {
	if _, ok := r.cars[car.ID]; !ok {
		return domain.ErrCarNotFound
	}
	r.cars[car.ID] = cloneCar(car)
	return nil
}

func (r *stubCarRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.cars[id]; !ok {
		return domain.ErrCarNotFound
	}
	delete(r.cars, id)
	return nil
}

func (r *stubCarRepo) List(_ context.Context, filter ports.ListCarsFilter) ([]*domain.Car, int64, error) {
	var out []*domain.Car
	for _, car := range r.cars {
		if filter.Owner != "" && car.Owner != filter.Owner {
			continue
		}
		if filter.Make != "" && car.Make != filter.Make {
			continue
		}
		if filter.MaxPriceCents > 0 && car.PriceCents > filter.MaxPriceCents {
			continue
		}
		out = append(out, cloneCar(car))
	}
	return out, int64(len(out)), nil
}

func TestCarService_CreateAndGet(t *testing.T) {
	repo := newStubCarRepo()
	svc := NewCarService(repo, zerolog.Nop())

	car, err := svc.CreateCar(context.Background(), ports.CreateCarInput{
		Owner:      "victor",
		Make:       "Toyota",
		Model:      "Corolla",
		Year:       2019,
		PriceCents: 1_250_000,
		MileageKm:  48000,
	})
	if err != nil {
		t.Fatalf("CreateCar returned error: %v", err)
	}
	if car.Status != domain.CarAvailable {
		t.Fatalf("new listing should be available, got %s", car.Status)
	}

	got, err := svc.GetCar(context.Background(), car.ID)
	if err != nil {
		t.Fatalf("GetCar returned error: %v", err)
	}
	if got.Owner != "victor" || got.Make != "Toyota" {
		t.Fatalf("unexpected car: %+v", got)
	}
}

func TestCarService_UpdateStatusTransitions(t *testing.T) {
	repo := newStubCarRepo()
	svc := NewCarService(repo, zerolog.Nop())

	car, err := svc.CreateCar(context.Background(), ports.CreateCarInput{Owner: "victor", Make: "Mazda", Model: "3", Year: 2021, PriceCents: 2_000_000})
	if err != nil {
		t.Fatalf("CreateCar returned error: %v", err)
	}

	sold := string(domain.CarSold)
	if _, err := svc.UpdateCar(context.Background(), car.ID, ports.UpdateCarInput{Status: &sold}); err != nil {
		t.Fatalf("available→sold should be allowed, got %v", err)
	}

	available := string(domain.CarAvailable)
	if _, err := svc.UpdateCar(context.Background(), car.ID, ports.UpdateCarInput{Status: &available}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("sold is terminal; expected ErrInvalidTransition, got %v", err)
	}
}

func TestCarService_UpdatePartialFields(t *testing.T) {
	repo := newStubCarRepo()
	svc := NewCarService(repo, zerolog.Nop())

	car, err := svc.CreateCar(context.Background(), ports.CreateCarInput{Owner: "victor", Make: "Honda", Model: "Civic", Year: 2020, PriceCents: 1_800_000, MileageKm: 30000})
	if err != nil {
		t.Fatalf("CreateCar returned error: %v", err)
	}

	newPrice := int64(1_700_000)
	updated, err := svc.UpdateCar(context.Background(), car.ID, ports.UpdateCarInput{PriceCents: &newPrice})
	if err != nil {
		t.Fatalf("UpdateCar returned error: %v", err)
	}
	if updated.PriceCents != newPrice {
		t.Fatalf("price not updated: %d", updated.PriceCents)
	}
	if updated.MileageKm != 30000 {
		t.Fatalf("untouched field changed: %d", updated.MileageKm)
	}
}

func TestCarService_ListCapsLimit(t *testing.T) {
	repo := newStubCarRepo()
	svc := NewCarService(repo, zerolog.Nop())

	result, err := svc.ListCars(context.Background(), ports.ListCarsFilter{Page: 0, Limit: 1000})
	if err != nil {
		t.Fatalf("ListCars returned error: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("expected page normalised to 1, got %d", result.Page)
	}
	if result.Limit != maxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxPageLimit, result.Limit)
	}
}

func TestCarService_DeleteMissing(t *testing.T) {
	repo := newStubCarRepo()
	svc := NewCarService(repo, zerolog.Nop())

	if err := svc.DeleteCar(context.Background(), "ghost"); !errors.Is(err, domain.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
}
