package container

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/cmd/storefront/repository"
	"github.com/storelab/storefront/cmd/storefront/service"
	"github.com/storelab/storefront/common/bootstrap"
	"github.com/storelab/storefront/common/cache"
	"github.com/storelab/storefront/common/ratelimit"
	rediscommon "github.com/storelab/storefront/common/redis"
	commonrepo "github.com/storelab/storefront/common/repository"
	"github.com/storelab/storefront/common/tagging"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components  *bootstrap.Components
	Redis       *rediscommon.Client
	RateLimiter *ratelimit.RateLimiter

	// Repositories
	TagRepo        *commonrepo.TagRepository
	TaggedItemRepo *commonrepo.TaggedItemRepository
	ProductRepo    *repository.ProductRepository
	CollectionRepo *repository.CollectionRepository
	CustomerRepo   *repository.CustomerRepository
	OrderRepo      *repository.OrderRepository
	CartRepo       *repository.CartRepository

	// Tagging core
	Registry *tagging.Registry
	Store    *tagging.Store

	// Services
	TaggingService  *service.TaggingService
	CatalogService  *service.CatalogService
	CustomerService *service.CustomerService
	OrderService    *service.OrderService
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	cfg := components.Config

	// Redis backs the rate limiter and, optionally, the catalog cache
	redisRaw := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisRaw.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	redisClient := rediscommon.NewClient(redisRaw, components.Logger)
	rateLimiter := ratelimit.NewRateLimiter(redisRaw, components.Logger)

	// Bootstrap wires a memory cache; swap in Redis when configured
	if cfg.Cache.Enabled && cfg.Cache.Backend == "redis" {
		components.SetCache(cache.NewRedisCache(redisClient, cfg.Service.Name+":"))
	}

	// Initialize repositories
	tagRepo := commonrepo.NewTagRepository(components.DB)
	taggedItemRepo := commonrepo.NewTaggedItemRepository(components.DB)
	productRepo := repository.NewProductRepository(components.DB)
	collectionRepo := repository.NewCollectionRepository(components.DB)
	customerRepo := repository.NewCustomerRepository(components.DB)
	orderRepo := repository.NewOrderRepository(components.DB)
	cartRepo := repository.NewCartRepository(components.DB)

	// Register one resolver per taggable type. The store stays ignorant of
	// the concrete entities; this registry is the only place that binds a
	// target type string to a loader.
	registry := tagging.NewRegistry()
	registry.Register(models.TargetTypeProduct, func(ctx context.Context, id uuid.UUID) (any, bool, error) {
		return resolveEntity(productRepo.GetByID(ctx, id))
	})
	registry.Register(models.TargetTypeCustomer, func(ctx context.Context, id uuid.UUID) (any, bool, error) {
		return resolveEntity(customerRepo.GetByID(ctx, id))
	})
	registry.Register(models.TargetTypeOrder, func(ctx context.Context, id uuid.UUID) (any, bool, error) {
		return resolveEntity(orderRepo.GetWithItems(ctx, id))
	})

	store := tagging.NewStore(taggedItemRepo, registry, components.Logger)

	// Initialize services (bottom-up: dependencies first)
	filterEvaluator := service.NewFilterEvaluator()

	var catalogCache cache.Cache
	if cfg.Cache.Enabled {
		catalogCache = components.Cache
	}

	taggingService := service.NewTaggingService(tagRepo, store, components.Logger)
	catalogService := service.NewCatalogService(
		productRepo,
		collectionRepo,
		filterEvaluator,
		catalogCache,
		cfg.Cache.DefaultTTL,
		components.Logger,
	)
	customerService := service.NewCustomerService(customerRepo, components.Logger)
	orderService := service.NewOrderService(
		orderRepo,
		cartRepo,
		productRepo,
		customerRepo,
		components.Logger,
	)

	return &Container{
		Components:      components,
		Redis:           redisClient,
		RateLimiter:     rateLimiter,
		TagRepo:         tagRepo,
		TaggedItemRepo:  taggedItemRepo,
		ProductRepo:     productRepo,
		CollectionRepo:  collectionRepo,
		CustomerRepo:    customerRepo,
		OrderRepo:       orderRepo,
		CartRepo:        cartRepo,
		Registry:        registry,
		Store:           store,
		TaggingService:  taggingService,
		CatalogService:  catalogService,
		CustomerService: customerService,
		OrderService:    orderService,
	}, nil
}

// resolveEntity adapts a repository GetByID result to the resolver
// contract: a missing row is found == false, not an error.
func resolveEntity[T any](entity *T, err error) (any, bool, error) {
	if err != nil {
		if tagging.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entity, true, nil
}
