package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

type stubPurchaseRepo struct {
	purchases map[string]*domain.Purchase
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[string]*domain.Purchase)}
}

func clonePurchase(p *domain.Purchase) *domain.Purchase {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPurchaseRepo) Create(_ context.Context, p *domain.Purchase) error {
	p.ID = p.Reference
	r.purchases[p.Reference] = clonePurchase(p)
	return nil
}

func (r *stubPurchaseRepo) FindByReference(_ context.Context, reference string) (*domain.Purchase, error) {
	p, ok := r.purchases[reference]
	if !ok {
		return nil, domain.ErrPurchaseNotFound
	}
	return clonePurchase(p), nil
}

func (r *stubPurchaseRepo) Update(_ context.Context, p *domain.Purchase) error {
	if _, ok := r.purchases[p.Reference]; !ok {
		return domain.ErrPurchaseNotFound
	}
	r.purchases[p.Reference] = clonePurchase(p)
	return nil
}

func (r *stubPurchaseRepo) ListByBuyer(_ context.Context, buyer string, _, _ int) ([]*domain.Purchase, int64, error) {
	var out []*domain.Purchase
	for _, p := range r.purchases {
		if buyer != "" && p.Buyer != buyer {
			continue
		}
		out = append(out, clonePurchase(p))
	}
	return out, int64(len(out)), nil
}

func seedCar(t *testing.T, cars *stubCarRepo, owner string) *domain.Car {
	t.Helper()
	svc := NewCarService(cars, zerolog.Nop())
	car, err := svc.CreateCar(context.Background(), ports.CreateCarInput{
		Owner: owner, Make: "Ford", Model: "Focus", Year: 2018, PriceCents: 900_000,
	})
	if err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return car
}

func TestPurchaseService_Create_ReservesCar(t *testing.T) {
	cars := newStubCarRepo()
	purchases := newStubPurchaseRepo()
	svc := NewPurchaseService(purchases, cars, zerolog.Nop())
	car := seedCar(t, cars, "sally")

	purchase, err := svc.CreatePurchase(context.Background(), "bernard", car.ID)
	if err != nil {
		t.Fatalf("CreatePurchase returned error: %v", err)
	}
	if purchase.Reference == "" {
		t.Fatalf("expected a reference")
	}
	if purchase.Status != domain.PurchasePending {
		t.Fatalf("expected pending, got %s", purchase.Status)
	}
	if purchase.Seller != "sally" || purchase.PriceCents != 900_000 {
		t.Fatalf("purchase did not capture car details: %+v", purchase)
	}

	updated, _ := cars.FindByID(context.Background(), car.ID)
	if updated.Status != domain.CarReserved {
		t.Fatalf("expected car reserved, got %s", updated.Status)
	}
}

func TestPurchaseService_Create_UnavailableCar(t *testing.T) {
	cars := newStubCarRepo()
	purchases := newStubPurchaseRepo()
	svc := NewPurchaseService(purchases, cars, zerolog.Nop())
	car := seedCar(t, cars, "sally")

	if _, err := svc.CreatePurchase(context.Background(), "bernard", car.ID); err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	if _, err := svc.CreatePurchase(context.Background(), "rival", car.ID); !errors.Is(err, domain.ErrCarUnavailable) {
		t.Fatalf("expected ErrCarUnavailable, got %v", err)
	}
}

func TestPurchaseService_CompleteAndCancel(t *testing.T) {
	cars := newStubCarRepo()
	purchases := newStubPurchaseRepo()
	svc := NewPurchaseService(purchases, cars, zerolog.Nop())

	car := seedCar(t, cars, "sally")
	purchase, err := svc.CreatePurchase(context.Background(), "bernard", car.ID)
	if err != nil {
		t.Fatalf("CreatePurchase returned error: %v", err)
	}

	completed, err := svc.CompletePurchase(context.Background(), purchase.Reference)
	if err != nil {
		t.Fatalf("CompletePurchase returned error: %v", err)
	}
	if completed.Status != domain.PurchaseCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	soldCar, _ := cars.FindByID(context.Background(), car.ID)
	if soldCar.Status != domain.CarSold {
		t.Fatalf("expected car sold, got %s", soldCar.Status)
	}

	// A finalized purchase cannot be cancelled.
	if _, err := svc.CancelPurchase(context.Background(), purchase.Reference); !errors.Is(err, domain.ErrPurchaseFinalized) {
		t.Fatalf("expected ErrPurchaseFinalized, got %v", err)
	}

	// Cancelling a pending purchase releases the car.
	car2 := seedCar(t, cars, "sally")
	p2, err := svc.CreatePurchase(context.Background(), "bernard", car2.ID)
	if err != nil {
		t.Fatalf("CreatePurchase returned error: %v", err)
	}
	if _, err := svc.CancelPurchase(context.Background(), p2.Reference); err != nil {
		t.Fatalf("CancelPurchase returned error: %v", err)
	}
	released, _ := cars.FindByID(context.Background(), car2.ID)
	if released.Status != domain.CarAvailable {
		t.Fatalf("expected car released to available, got %s", released.Status)
	}
}

func TestPurchaseService_ListScopedToBuyer(t *testing.T) {
	cars := newStubCarRepo()
	purchases := newStubPurchaseRepo()
	svc := NewPurchaseService(purchases, cars, zerolog.Nop())

	carA := seedCar(t, cars, "sally")
	carB := seedCar(t, cars, "sally")
	if _, err := svc.CreatePurchase(context.Background(), "bernard", carA.ID); err != nil {
		t.Fatalf("CreatePurchase returned error: %v", err)
	}
	if _, err := svc.CreatePurchase(context.Background(), "other", carB.ID); err != nil {
		t.Fatalf("CreatePurchase returned error: %v", err)
	}

	mine, total, err := svc.ListPurchases(context.Background(), "bernard", 1, 10)
	if err != nil {
		t.Fatalf("ListPurchases returned error: %v", err)
	}
	if total != 1 || len(mine) != 1 || mine[0].Buyer != "bernard" {
		t.Fatalf("expected only bernard's purchase, got %d/%d", len(mine), total)
	}

	all, totalAll, err := svc.ListPurchases(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("ListPurchases returned error: %v", err)
	}
	if totalAll != 2 || len(all) != 2 {
		t.Fatalf("expected all purchases for admin view, got %d/%d", len(all), totalAll)
	}
}
