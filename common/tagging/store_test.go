package tagging

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storelab/storefront/common/logger"
	"github.com/storelab/storefront/common/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *MemoryRepository, *Registry) {
	t.Helper()

	repo := NewMemoryRepository()
	registry := NewRegistry()
	registry.Register("product", func(ctx context.Context, id uuid.UUID) (any, bool, error) {
		return nil, false, nil
	})

	log := logger.New("error", "json")
	return NewStore(repo, registry, log), repo, registry
}

func newTag(repo *MemoryRepository, label string) models.Tag {
	tag := models.Tag{ID: uuid.New(), Label: label, CreatedAt: time.Now()}
	repo.CreateTag(context.Background(), tag)
	return tag
}

func TestApply_ThenTagsForIncludesTagOnce(t *testing.T) {
	ctx := context.Background()
	store, repo, _ := newTestStore(t)

	tag := newTag(repo, "sale")
	productID := uuid.New()

	item, err := store.Apply(ctx, tag.ID, "product", productID)
	require.NoError(t, err)
	assert.Equal(t, tag.ID, item.TagID)
	assert.Equal(t, "product", item.TargetType)
	assert.Equal(t, productID, item.TargetID)

	tags, err := store.TagsFor(ctx, "product", productID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "sale", tags[0].Label)
}

func TestApply_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, repo, _ := newTestStore(t)

	tag := newTag(repo, "featured")
	productID := uuid.New()

	first, err := store.Apply(ctx, tag.ID, "product", productID)
	require.NoError(t, err)

	second, err := store.Apply(ctx, tag.ID, "product", productID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "re-applying must return the existing association")

	tags, err := store.TagsFor(ctx, "product", productID)
	require.NoError(t, err)
	assert.Len(t, tags, 1, "duplicate associations must not accumulate")
}

func TestApply_MissingTag(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	_, err := store.Apply(ctx, uuid.New(), "product", uuid.New())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestApply_UnregisteredType(t *testing.T) {
	ctx := context.Background()
	store, repo, _ := newTestStore(t)

	tag := newTag(repo, "sale")

	_, err := store.Apply(ctx, tag.ID, "video", uuid.New())
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
}

func TestRemove_ThenTagsForExcludesTag(t *testing.T) {
	ctx := context.Background()
	store, repo, _ := newTestStore(t)

	tag := newTag(repo, "sale")
	productID := uuid.New()

	_, err := store.Apply(ctx, tag.ID, "product", productID)
	require.NoError(t, err)

	removed, err := store.Remove(ctx, tag.ID, "product", productID)
	require.NoError(t, err)
	assert.True(t, removed)

	tags, err := store.TagsFor(ctx, "product", productID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestRemove_AbsentAssociationIsNotAnError(t *testing.T) {
	ctx := context.Background()
	store, repo, _ := newTestStore(t)

	tag := newTag(repo, "sale")

	removed, err := store.Remove(ctx, tag.ID, "product", uuid.New())
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeleteTag_CascadesToAssociations(t *testing.T) {
	ctx := context.Background()
	store, repo, registry := newTestStore(t)
	registry.Register("customer", func(c context.Context, id uuid.UUID) (any, bool, error) {
		return nil, false, nil
	})

	tag := newTag(repo, "clearance")
	productID := uuid.New()
	customerID := uuid.New()

	_, err := store.Apply(ctx, tag.ID, "product", productID)
	require.NoError(t, err)
	_, err = store.Apply(ctx, tag.ID, "customer", customerID)
	require.NoError(t, err)

	require.True(t, repo.DeleteTag(ctx, tag.ID))

	for _, targetType := range []string{"product", "customer"} {
		ids, err := store.ItemsFor(ctx, tag.ID, targetType)
		require.NoError(t, err)
		assert.Empty(t, ids, "cascade must clear %s associations", targetType)
	}
}

func TestItemsFor_ScenarioTwoProductsThenUntagOne(t *testing.T) {
	ctx := context.Background()
	store, repo, _ := newTestStore(t)

	sale := newTag(repo, "sale")
	first := uuid.New()
	second := uuid.New()

	_, err := store.Apply(ctx, sale.ID, "product", first)
	require.NoError(t, err)
	_, err = store.Apply(ctx, sale.ID, "product", second)
	require.NoError(t, err)

	ids, err := store.ItemsFor(ctx, sale.ID, "product")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{first, second}, ids)

	removed, err := store.Remove(ctx, sale.ID, "product", first)
	require.NoError(t, err)
	assert.True(t, removed)

	ids, err = store.ItemsFor(ctx, sale.ID, "product")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second}, ids)
}

func TestResolve_UnregisteredTypeIsConfigurationError(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	_, _, err := store.Resolve(ctx, "video", uuid.New())
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
}

func TestResolve_MissingTargetIsNotFoundNotError(t *testing.T) {
	ctx := context.Background()
	store, _, registry := newTestStore(t)

	type product struct{ Title string }
	known := uuid.New()
	registry.Register("product", func(c context.Context, id uuid.UUID) (any, bool, error) {
		if id == known {
			return product{Title: "Bread"}, true, nil
		}
		return nil, false, nil
	})

	entity, found, err := store.Resolve(ctx, "product", known)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, product{Title: "Bread"}, entity)

	_, found, err = store.Resolve(ctx, "product", uuid.New())
	require.NoError(t, err, "a missing target is a normal outcome")
	assert.False(t, found)
}
