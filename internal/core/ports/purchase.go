package ports

import (
	"context"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

// PurchaseRepository defines persistence operations for purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, p *domain.Purchase) error
	FindByReference(ctx context.Context, reference string) (*domain.Purchase, error)
	Update(ctx context.Context, p *domain.Purchase) error
	// ListByBuyer returns a page of the buyer's purchases and the total count.
	// An empty buyer lists all purchases (admin view).
	ListByBuyer(ctx context.Context, buyer string, page, limit int) ([]*domain.Purchase, int64, error)
}

// PurchaseService defines use-case operations for purchases.
//
// CreatePurchase reserves the car; CompletePurchase marks it sold;
// CancelPurchase releases it back to available. Both finalizers fail with
// domain.ErrPurchaseFinalized once the purchase left the pending state.
type PurchaseService interface {
	CreatePurchase(ctx context.Context, buyer, carID string) (*domain.Purchase, error)
	GetPurchase(ctx context.Context, reference string) (*domain.Purchase, error)
	CompletePurchase(ctx context.Context, reference string) (*domain.Purchase, error)
	CancelPurchase(ctx context.Context, reference string) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, buyer string, page, limit int) ([]*domain.Purchase, int64, error)
}
