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

const (
	collectionSellers = "sellers"
	collectionBuyers  = "buyers"
)

// SellerRepository persists seller profiles. One profile per username,
// enforced by a unique index.
type SellerRepository struct {
	col *mongo.Collection
}

func NewSellerRepository(db *mongo.Database) *SellerRepository {
	return &SellerRepository{col: db.Collection(collectionSellers)}
}

func (r *SellerRepository) Create(ctx context.Context, seller *domain.Seller) (*domain.Seller, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if seller.ID == "" {
		seller.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, seller); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSellerExists
		}
		return nil, err
	}
	return seller, nil
}

func (r *SellerRepository) FindByUsername(ctx context.Context, username string) (*domain.Seller, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var seller domain.Seller
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&seller)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSellerNotFound
		}
		return nil, err
	}
	return &seller, nil
}

func (r *SellerRepository) Update(ctx context.Context, seller *domain.Seller) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"username": seller.Username}, seller)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSellerNotFound
	}
	return nil
}

func (r *SellerRepository) Delete(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSellerNotFound
	}
	return nil
}

func (r *SellerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// BuyerRepository persists buyer profiles.
type BuyerRepository struct {
	col *mongo.Collection
}

func NewBuyerRepository(db *mongo.Database) *BuyerRepository {
	return &BuyerRepository{col: db.Collection(collectionBuyers)}
}

func (r *BuyerRepository) Create(ctx context.Context, buyer *domain.Buyer) (*domain.Buyer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if buyer.ID == "" {
		buyer.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, buyer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBuyerExists
		}
		return nil, err
	}
	return buyer, nil
}

func (r *BuyerRepository) FindByUsername(ctx context.Context, username string) (*domain.Buyer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var buyer domain.Buyer
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&buyer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBuyerNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

func (r *BuyerRepository) Update(ctx context.Context, buyer *domain.Buyer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"username": buyer.Username}, buyer)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrBuyerNotFound
	}
	return nil
}

func (r *BuyerRepository) Delete(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrBuyerNotFound
	}
	return nil
}

func (r *BuyerRepository) List(ctx context.Context, page, limit int) ([]*domain.Buyer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "username", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var buyers []*domain.Buyer
	if err := cursor.All(ctx, &buyers); err != nil {
		return nil, 0, err
	}
	return buyers, total, nil
}

func (r *BuyerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
