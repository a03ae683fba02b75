package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/autolane/marketplace-api/internal/api/handler"
	"github.com/autolane/marketplace-api/internal/api/middleware"
	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// Deps carries everything the router needs. Services and resolvers are
// interfaces so tests can drive the full HTTP pipeline with in-memory
// stubs.
type Deps struct {
	Logger zerolog.Logger

	Auth      ports.AuthService
	Cars      ports.CarService
	Sellers   ports.SellerService
	Buyers    ports.BuyerService
	Purchases ports.PurchaseService
	Reviews   ports.ReviewService
	Images    ports.ImageService

	Codec ports.TokenCodec
	// Resolver maps verified token subjects to identities, normally the
	// auth service itself.
	Resolver middleware.IdentityResolver

	// ImageOwner resolves an image ID to the username that owns its car.
	ImageOwner middleware.OwnerResolver

	// Mongo and Redis back the readiness probe. The probe route is only
	// registered when both are present.
	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// The authenticator runs on every request and never rejects: requests
	// without a usable token proceed anonymously and the per-route gates
	// below decide.
	e.Use(middleware.Authenticate(deps.Codec, deps.Resolver, deps.Logger))

	anyRole := middleware.RequireRoles(domain.RoleAdmin, domain.RoleSeller, domain.RoleBuyer)
	carOwner := func(ctx context.Context, id string) (string, error) {
		car, err := deps.Cars.GetCar(ctx, id)
		if err != nil {
			return "", err
		}
		return car.Owner, nil
	}
	reviewAuthor := func(ctx context.Context, id string) (string, error) {
		review, err := deps.Reviews.GetReview(ctx, id)
		if err != nil {
			return "", err
		}
		return review.Author, nil
	}

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	health := handler.NewHealthHandler()
	e.GET("/health", health.Liveness)
	if deps.Mongo != nil && deps.Redis != nil {
		ready := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", ready.Readiness)
	}

	auth := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)
	e.GET("/auth/me", auth.Whoami, anyRole)
	e.PUT("/auth/password", auth.ChangePassword, anyRole)
	e.DELETE("/auth/account", auth.DeleteAccount, anyRole)

	v1 := e.Group("/v1")

	cars := handler.NewCarHandler(deps.Cars)
	v1.GET("/cars", cars.List)
	v1.GET("/cars/:id", cars.Get)
	v1.POST("/cars", cars.Create, middleware.RequireRoles(domain.RoleSeller))
	v1.PATCH("/cars/:id", cars.Update, middleware.RequireOwner("id", carOwner))
	v1.DELETE("/cars/:id", cars.Delete, middleware.RequireOwner("id", carOwner))

	images := handler.NewImageHandler(deps.Images)
	v1.GET("/cars/:id/images", images.List)
	v1.POST("/cars/:id/images", images.Upload, middleware.RequireOwner("id", carOwner))
	v1.DELETE("/images/:id", images.Delete, middleware.RequireOwner("id", deps.ImageOwner))

	sellers := handler.NewSellerHandler(deps.Sellers)
	v1.POST("/sellers", sellers.Create, middleware.RequireRoles(domain.RoleSeller))
	v1.GET("/sellers/:username", sellers.Get)
	v1.PUT("/sellers/:username", sellers.Update, middleware.RequireSelf("username"))
	v1.DELETE("/sellers/:username", sellers.Delete, middleware.RequireRoles(domain.RoleAdmin))

	reviews := handler.NewReviewHandler(deps.Reviews)
	v1.GET("/sellers/:username/reviews", reviews.List)
	v1.POST("/sellers/:username/reviews", reviews.Create, middleware.RequireRoles(domain.RoleBuyer))
	v1.DELETE("/reviews/:id", reviews.Delete, middleware.RequireOwner("id", reviewAuthor))

	buyers := handler.NewBuyerHandler(deps.Buyers)
	v1.POST("/buyers", buyers.Create, middleware.RequireRoles(domain.RoleBuyer))
	v1.GET("/buyers", buyers.List, middleware.RequireRoles(domain.RoleAdmin))
	v1.GET("/buyers/:username", buyers.Get, middleware.RequireSelf("username"))
	v1.PUT("/buyers/:username", buyers.Update, middleware.RequireSelf("username"))
	v1.DELETE("/buyers/:username", buyers.Delete, middleware.RequireRoles(domain.RoleAdmin))

	purchases := handler.NewPurchaseHandler(deps.Purchases)
	v1.POST("/purchases", purchases.Create, middleware.RequireRoles(domain.RoleBuyer))
	v1.GET("/purchases", purchases.List, middleware.RequireRoles(domain.RoleBuyer, domain.RoleAdmin))
	v1.GET("/purchases/:reference", purchases.Get, anyRole)
	v1.POST("/purchases/:reference/complete", purchases.Complete, middleware.RequireRoles(domain.RoleSeller, domain.RoleAdmin))
	v1.POST("/purchases/:reference/cancel", purchases.Cancel, middleware.RequireRoles(domain.RoleBuyer, domain.RoleAdmin))

	return e
}
