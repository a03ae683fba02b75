package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

const collectionImages = "car_images"

// ImageRepository persists listing-photo metadata. The blobs themselves
// live in object storage under the stored keys.
type ImageRepository struct {
	col *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{col: db.Collection(collectionImages)}
}

func (r *ImageRepository) Create(ctx context.Context, image *domain.CarImage) (*domain.CarImage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if image.ID == "" {
		image.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (r *ImageRepository) FindByID(ctx context.Context, id string) (*domain.CarImage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var image domain.CarImage
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&image)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) ListByCar(ctx context.Context, carID string) ([]*domain.CarImage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"car_id": carID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var images []*domain.CarImage
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (r *ImageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "car_id", Value: 1}},
	})
	return err
}
