package domain

import (
	"errors"
	"time"
)

// PurchaseStatus represents the lifecycle state of a purchase.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

var (
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrPurchaseFinalized = errors.New("purchase already finalized")
)

// Purchase records a buyer taking a car off the market. Reference is the
// externally visible identifier handed back to the client.
type Purchase struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	Reference   string         `json:"reference" bson:"reference"`
	CarID       string         `json:"car_id" bson:"car_id"`
	Buyer       string         `json:"buyer" bson:"buyer"`
	Seller      string         `json:"seller" bson:"seller"`
	PriceCents  int64          `json:"price_cents" bson:"price_cents"`
	Status      PurchaseStatus `json:"status" bson:"status"`
	PurchasedAt time.Time      `json:"purchased_at" bson:"purchased_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}
