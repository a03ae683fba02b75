// Command api runs the marketplace HTTP server.
//
//	@title			AutoLane Marketplace API
//	@version		1.0
//	@description	REST backend for car listings, purchases and seller reviews.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autolane/marketplace-api/internal/api"
	"github.com/autolane/marketplace-api/internal/api/middleware"
	"github.com/autolane/marketplace-api/internal/core/service"
	"github.com/autolane/marketplace-api/internal/infrastructure/config"
	"github.com/autolane/marketplace-api/internal/infrastructure/db/mongo"
	"github.com/autolane/marketplace-api/internal/infrastructure/db/redis"
	"github.com/autolane/marketplace-api/internal/infrastructure/queue"
	"github.com/autolane/marketplace-api/internal/infrastructure/storage/s3"
	"github.com/autolane/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	store, err := s3.New(ctx, s3.Config{
		Bucket:          cfg.S3.Bucket,
		Region:          cfg.S3.Region,
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object store init failed")
	}

	identityRepo := mongo.NewIdentityRepository(db)
	carRepo := mongo.NewCarRepository(db)
	sellerRepo := mongo.NewSellerRepository(db)
	buyerRepo := mongo.NewBuyerRepository(db)
	purchaseRepo := mongo.NewPurchaseRepository(db)
	reviewRepo := mongo.NewReviewRepository(db)
	imageRepo := mongo.NewImageRepository(db)
	auditRepo := mongo.NewAuditRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"identities": identityRepo,
		"cars":       carRepo,
		"sellers":    sellerRepo,
		"buyers":     buyerRepo,
		"purchases":  purchaseRepo,
		"reviews":    reviewRepo,
		"car_images": imageRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, log)
	dispatcher.Start(ctx)

	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redis.NewLoginThrottle(redisClient, cfg.Login.MaxAttempts, cfg.Login.Window)
	authService := service.NewAuthService(identityRepo, service.NewBcryptHasher(0), codec, throttle, dispatcher, log)

	carService := service.NewCarService(carRepo, log)
	imageService := service.NewImageService(imageRepo, carRepo, store, log)

	imageOwner := func(ctx context.Context, imageID string) (string, error) {
		image, err := imageRepo.FindByID(ctx, imageID)
		if err != nil {
			return "", err
		}
		car, err := carRepo.FindByID(ctx, image.CarID)
		if err != nil {
			return "", err
		}
		return car.Owner, nil
	}

	e := api.NewRouter(api.Deps{
		Logger:     log,
		Auth:       authService,
		Cars:       carService,
		Sellers:    service.NewSellerService(sellerRepo, log),
		Buyers:     service.NewBuyerService(buyerRepo, log),
		Purchases:  service.NewPurchaseService(purchaseRepo, carRepo, log),
		Reviews:    service.NewReviewService(reviewRepo, sellerRepo, log),
		Images:     imageService,
		Codec:      codec,
		Resolver:   authService,
		ImageOwner: middleware.OwnerResolver(imageOwner),
		Mongo:      db,
		Redis:      redisClient,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
