package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/api/metrics"
	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// ImageService stores listing photos in the object store and their metadata
// in the image repository. Object keys are opaque UUIDs namespaced by car.
type ImageService struct {
	images ports.ImageRepository
	cars   ports.CarRepository
	store  ports.ObjectStore
	logger zerolog.Logger
}

func NewImageService(images ports.ImageRepository, cars ports.CarRepository, store ports.ObjectStore, logger zerolog.Logger) *ImageService {
	return &ImageService{images: images, cars: cars, store: store, logger: logger}
}

// UploadImage streams the body to object storage, then records the metadata.
// The object is removed again if the metadata write fails.
func (s *ImageService) UploadImage(ctx context.Context, carID, contentType string, body io.Reader, size int64) (*domain.CarImage, error) {
	car, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("cars/%s/%s", car.ID, uuid.NewString())
	if err := s.store.Put(ctx, key, contentType, body, size); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	image := &domain.CarImage{
		CarID:       car.ID,
		Key:         key,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedAt:  time.Now().UTC(),
	}
	created, err := s.images.Create(ctx, image)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error().Err(delErr).Str("key", key).Msg("orphaned image object")
		}
		return nil, err
	}

	metrics.ImageUploadBytes.Observe(float64(size))
	s.logger.Info().Str("car_id", carID).Str("key", key).Int64("size", size).Msg("image uploaded")

	created.URL, err = s.store.URL(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to presign image url")
	}
	return created, nil
}

// ListCarImages returns the car's image metadata with fresh fetch URLs.
func (s *ImageService) ListCarImages(ctx context.Context, carID string) ([]*domain.CarImage, error) {
	if _, err := s.cars.FindByID(ctx, carID); err != nil {
		return nil, err
	}
	images, err := s.images.ListByCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		url, err := s.store.URL(ctx, img.Key)
		if err != nil {
			s.logger.Warn().Err(err).Str("key", img.Key).Msg("failed to presign image url")
			continue
		}
		img.URL = url
	}
	return images, nil
}

// DeleteImage removes the metadata first, then the blob. A blob delete
// failure is logged, not surfaced: the image is already unreachable.
func (s *ImageService) DeleteImage(ctx context.Context, imageID string) error {
	image, err := s.images.FindByID(ctx, imageID)
	if err != nil {
		return err
	}
	if err := s.images.Delete(ctx, imageID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, image.Key); err != nil {
		s.logger.Error().Err(err).Str("key", image.Key).Msg("failed to delete image object")
	}
	return nil
}
