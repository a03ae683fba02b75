package domain

import (
	"errors"
	"time"
)

// CarStatus represents the sale state of a listed car.
type CarStatus string

const (
	CarAvailable CarStatus = "available"
	CarReserved  CarStatus = "reserved"
	CarSold      CarStatus = "sold"
)

// validCarTransitions defines the allowed listing state machine.
// "sold" is terminal; a reserved car can fall back to available when the
// pending purchase is cancelled.
var validCarTransitions = map[CarStatus][]CarStatus{
	CarAvailable: {CarReserved, CarSold},
	CarReserved:  {CarSold, CarAvailable},
}

var (
	ErrCarNotFound       = errors.New("car not found")
	ErrCarUnavailable    = errors.New("car is not available")
	ErrInvalidTransition = errors.New("invalid car status transition")
)

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s CarStatus) CanTransitionTo(next CarStatus) bool {
	for _, allowed := range validCarTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Car is a listing owned by a seller. Owner is the seller's username, which
// is what ownership checks compare against the request principal.
type Car struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Owner       string    `json:"owner" bson:"owner"`
	Make        string    `json:"make" bson:"make"`
	Model       string    `json:"model" bson:"model"`
	Year        int       `json:"year" bson:"year"`
	PriceCents  int64     `json:"price_cents" bson:"price_cents"`
	MileageKm   int       `json:"mileage_km" bson:"mileage_km"`
	Status      CarStatus `json:"status" bson:"status"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
