package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/cmd/storefront/repository"
	"github.com/storelab/storefront/common/cache"
	"github.com/storelab/storefront/common/logger"
)

// CatalogService handles product and collection operations
type CatalogService struct {
	products    *repository.ProductRepository
	collections *repository.CollectionRepository
	filter      *FilterEvaluator
	cache       cache.Cache
	cacheTTL    time.Duration
	log         *logger.Logger
}

// NewCatalogService creates a new catalog service. cache may be nil when
// caching is disabled.
func NewCatalogService(
	products *repository.ProductRepository,
	collections *repository.CollectionRepository,
	filter *FilterEvaluator,
	c cache.Cache,
	cacheTTL time.Duration,
	log *logger.Logger,
) *CatalogService {
	return &CatalogService{
		products:    products,
		collections: collections,
		filter:      filter,
		cache:       c,
		cacheTTL:    cacheTTL,
		log:         log,
	}
}

// CreateProduct inserts a new product, deriving the slug from the title
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.Title == "" {
		return fmt.Errorf("product title is required")
	}
	if product.UnitPrice < 0 {
		return fmt.Errorf("unit price cannot be negative")
	}
	if product.Slug == "" {
		product.Slug = Slugify(product.Title)
	}

	if err := s.products.Create(ctx, product); err != nil {
		return err
	}

	s.log.Info("created product", "product_id", product.ID, "title", product.Title)
	return nil
}

// GetProduct retrieves a product, reading through the cache when one is
// configured
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := productCacheKey(id)

	if s.cache != nil {
		if data, found, err := s.cache.Get(ctx, key); err == nil && found {
			product := &models.Product{}
			if err := json.Unmarshal(data, product); err == nil {
				return product, nil
			}
			// Corrupt entry: fall through to the database
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(product); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				s.log.Warn("failed to cache product", "product_id", id, "error", err)
			}
		}
	}

	return product, nil
}

// ListProducts retrieves products matching the repository filter, then
// applies the optional CEL expression in memory
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter, expr string) ([]models.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.filter.Filter(expr, products)
}

// PatchProduct applies an RFC 7386 merge patch to a product and persists
// the result. The id is restored after merging so a patch cannot move a
// product.
func (s *CatalogService) PatchProduct(ctx context.Context, id uuid.UUID, patch []byte) (*models.Product, error) {
	current, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patched, err := applyProductMergePatch(current, patch)
	if err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, patched); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
			s.log.Warn("failed to invalidate product cache", "product_id", id, "error", err)
		}
	}

	s.log.Info("patched product", "product_id", id)
	return patched, nil
}

// DeleteProduct removes a product and its cache entry
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
			s.log.Warn("failed to invalidate product cache", "product_id", id, "error", err)
		}
	}

	s.log.Info("deleted product", "product_id", id)
	return nil
}

// ProductStats computes catalog-wide aggregates
func (s *CatalogService) ProductStats(ctx context.Context) (*models.ProductStats, error) {
	return s.products.Stats(ctx)
}

// CreateCollection inserts a new collection
func (s *CatalogService) CreateCollection(ctx context.Context, collection *models.Collection) error {
	if collection.ID == uuid.Nil {
		collection.ID = uuid.New()
	}
	if collection.Title == "" {
		return fmt.Errorf("collection title is required")
	}

	if err := s.collections.Create(ctx, collection); err != nil {
		return err
	}

	s.log.Info("created collection", "collection_id", collection.ID, "title", collection.Title)
	return nil
}

// GetCollection retrieves a collection by id
func (s *CatalogService) GetCollection(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	return s.collections.GetByID(ctx, id)
}

// ListCollections retrieves all collections
func (s *CatalogService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	return s.collections.List(ctx)
}

// applyProductMergePatch merges the patch into the product JSON and
// restores identity fields
func applyProductMergePatch(current *models.Product, patch []byte) (*models.Product, error) {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}

	mergedJSON, err := jsonpatch.MergePatch(currentJSON, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to apply merge patch: %w", err)
	}

	patched := &models.Product{}
	if err := json.Unmarshal(mergedJSON, patched); err != nil {
		return nil, fmt.Errorf("failed to unmarshal patched product: %w", err)
	}

	// Identity is not patchable
	patched.ID = current.ID

	if patched.Title == "" {
		return nil, fmt.Errorf("product title cannot be cleared")
	}
	if patched.UnitPrice < 0 {
		return nil, fmt.Errorf("unit price cannot be negative")
	}

	return patched, nil
}

// Slugify derives a URL-safe slug from a title
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash

	for _, ch := range strings.ToLower(title) {
		switch {
		case (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9'):
			b.WriteRune(ch)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

func productCacheKey(id uuid.UUID) string {
	return "product:" + id.String()
}
