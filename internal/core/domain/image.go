package domain

import (
	"errors"
	"time"
)

var ErrImageNotFound = errors.New("image not found")

// CarImage is the metadata record for an uploaded listing photo. The binary
// itself lives in object storage under Key.
type CarImage struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	CarID       string    `json:"car_id" bson:"car_id"`
	Key         string    `json:"-" bson:"key"`
	ContentType string    `json:"content_type" bson:"content_type"`
	SizeBytes   int64     `json:"size_bytes" bson:"size_bytes"`
	URL         string    `json:"url,omitempty" bson:"-"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
