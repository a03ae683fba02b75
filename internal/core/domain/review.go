package domain

import (
	"errors"
	"time"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("review already exists for this seller")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

// Review is a buyer's rating of a seller. One review per buyer+seller pair.
type Review struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Seller    string    `json:"seller" bson:"seller"`
	Author    string    `json:"author" bson:"author"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
