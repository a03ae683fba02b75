package domain

import (
	"errors"
	"time"
)

var (
	ErrSellerNotFound = errors.New("seller not found")
	ErrSellerExists   = errors.New("seller already exists")
	ErrBuyerNotFound  = errors.New("buyer not found")
	ErrBuyerExists    = errors.New("buyer already exists")
)

// Seller is the public-facing profile of a selling identity.
// Username links the profile to its credential-store record.
type Seller struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Username  string    `json:"username" bson:"username"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	City      string    `json:"city,omitempty" bson:"city,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Buyer is the profile of a buying identity.
type Buyer struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Username  string    `json:"username" bson:"username"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
