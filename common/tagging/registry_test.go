package tagging

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_KnownAndTypes(t *testing.T) {
	registry := NewRegistry()
	assert.False(t, registry.Known("product"))
	assert.Empty(t, registry.Types())

	noop := func(ctx context.Context, id uuid.UUID) (any, bool, error) {
		return nil, false, nil
	}
	registry.Register("product", noop)
	registry.Register("customer", noop)

	assert.True(t, registry.Known("product"))
	assert.True(t, registry.Known("customer"))
	assert.Equal(t, []string{"customer", "product"}, registry.Types())
}

func TestRegistry_ResolveUnknownType(t *testing.T) {
	registry := NewRegistry()

	_, _, err := registry.Resolve(context.Background(), "article", uuid.New())
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	registry := NewRegistry()
	id := uuid.New()

	registry.Register("product", func(ctx context.Context, _ uuid.UUID) (any, bool, error) {
		return "old", true, nil
	})
	registry.Register("product", func(ctx context.Context, _ uuid.UUID) (any, bool, error) {
		return "new", true, nil
	})

	entity, found, err := registry.Resolve(context.Background(), "product", id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "new", entity)
}
