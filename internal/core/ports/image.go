package ports

import (
	"context"
	"io"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

// ObjectStore is the media-service boundary: binary blob storage addressed
// by opaque keys. The production implementation is S3-backed.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	// URL returns a time-limited, publicly fetchable URL for the object.
	URL(ctx context.Context, key string) (string, error)
}

// ImageRepository defines persistence operations for image metadata.
type ImageRepository interface {
	Create(ctx context.Context, image *domain.CarImage) (*domain.CarImage, error)
	FindByID(ctx context.Context, id string) (*domain.CarImage, error)
	ListByCar(ctx context.Context, carID string) ([]*domain.CarImage, error)
	Delete(ctx context.Context, id string) error
}

// ImageService defines use-case operations for listing photos.
type ImageService interface {
	UploadImage(ctx context.Context, carID, contentType string, body io.Reader, size int64) (*domain.CarImage, error)
	ListCarImages(ctx context.Context, carID string) ([]*domain.CarImage, error)
	DeleteImage(ctx context.Context, imageID string) error
}
