package handler

import (
	"time"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

type createPurchaseRequest struct {
	CarID string `json:"car_id" validate:"required"`
}

type purchaseResponse struct {
	Reference   string    `json:"reference"`
	CarID       string    `json:"car_id"`
	Buyer       string    `json:"buyer"`
	Seller      string    `json:"seller"`
	PriceCents  int64     `json:"price_cents"`
	Status      string    `json:"status"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type listPurchasesResponse struct {
	Data       []purchaseResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toPurchaseResponse(p *domain.Purchase) purchaseResponse {
	return purchaseResponse{
		Reference:   p.Reference,
		CarID:       p.CarID,
		Buyer:       p.Buyer,
		Seller:      p.Seller,
		PriceCents:  p.PriceCents,
		Status:      string(p.Status),
		PurchasedAt: p.PurchasedAt,
	}
}
