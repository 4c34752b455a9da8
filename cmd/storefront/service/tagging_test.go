package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/storelab/storefront/common/logger"
	commonmodels "github.com/storelab/storefront/common/models"
	"github.com/storelab/storefront/common/tagging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTaggingService wires the service over the in-memory repository
// with a product resolver backed by a plain map. The tag repository is
// nil: lifecycle methods hit Postgres and are covered elsewhere.
func newTestTaggingService(t *testing.T) (*TaggingService, *tagging.MemoryRepository, map[uuid.UUID]models.Product) {
	t.Helper()

	repo := tagging.NewMemoryRepository()
	registry := tagging.NewRegistry()
	products := make(map[uuid.UUID]models.Product)

	registry.Register(models.TargetTypeProduct, func(ctx context.Context, id uuid.UUID) (any, bool, error) {
		product, ok := products[id]
		if !ok {
			return nil, false, nil
		}
		return &product, true, nil
	})

	log := logger.New("error", "json")
	store := tagging.NewStore(repo, registry, log)
	return NewTaggingService(nil, store, log), repo, products
}

func seedTag(repo *tagging.MemoryRepository, label string) commonmodels.Tag {
	tag := commonmodels.Tag{ID: uuid.New(), Label: label, CreatedAt: time.Now()}
	repo.CreateTag(context.Background(), tag)
	return tag
}

func TestTaggingService_ApplyAndTagsFor(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestTaggingService(t)

	tag := seedTag(repo, "sale")
	productID := uuid.New()

	item, err := svc.ApplyTag(ctx, tag.ID, models.TargetTypeProduct, productID)
	require.NoError(t, err)
	assert.Equal(t, productID, item.TargetID)

	tags, err := svc.TagsFor(ctx, models.TargetTypeProduct, productID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "sale", tags[0].Label)
}

func TestTaggingService_RemoveTag(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestTaggingService(t)

	tag := seedTag(repo, "sale")
	productID := uuid.New()

	_, err := svc.ApplyTag(ctx, tag.ID, models.TargetTypeProduct, productID)
	require.NoError(t, err)

	removed, err := svc.RemoveTag(ctx, tag.ID, models.TargetTypeProduct, productID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveTag(ctx, tag.ID, models.TargetTypeProduct, productID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTaggingService_ResolveItems(t *testing.T) {
	ctx := context.Background()
	svc, repo, products := newTestTaggingService(t)

	tag := seedTag(repo, "featured")

	live := models.Product{ID: uuid.New(), Title: "Coffee Beans", UnitPrice: 14.50}
	products[live.ID] = live
	staleID := uuid.New()

	_, err := svc.ApplyTag(ctx, tag.ID, models.TargetTypeProduct, live.ID)
	require.NoError(t, err)
	_, err = svc.ApplyTag(ctx, tag.ID, models.TargetTypeProduct, staleID)
	require.NoError(t, err)

	items, err := svc.ResolveItems(ctx, tag.ID, models.TargetTypeProduct)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := make(map[uuid.UUID]TaggedItem, len(items))
	for _, item := range items {
		byID[item.TargetID] = item
	}

	resolved := byID[live.ID]
	assert.True(t, resolved.Found)
	require.NotNil(t, resolved.Entity)
	assert.Equal(t, "Coffee Beans", resolved.Entity.(*models.Product).Title)

	stale := byID[staleID]
	assert.False(t, stale.Found)
	assert.Nil(t, stale.Entity)
}

func TestTaggingService_UnregisteredTypeRejected(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestTaggingService(t)

	tag := seedTag(repo, "sale")

	_, err := svc.ApplyTag(ctx, tag.ID, "warehouse", uuid.New())
	require.Error(t, err)
	assert.True(t, tagging.IsConfiguration(err))

	_, err = svc.ItemsFor(ctx, tag.ID, "warehouse")
	require.Error(t, err)
	assert.True(t, tagging.IsConfiguration(err))
}

func TestTaggingService_ApplyMissingTag(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTaggingService(t)

	_, err := svc.ApplyTag(ctx, uuid.New(), models.TargetTypeProduct, uuid.New())
	require.Error(t, err)
	assert.True(t, tagging.IsNotFound(err))
}
