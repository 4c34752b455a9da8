package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyProductMergePatch_UpdatesFields(t *testing.T) {
	current := &models.Product{
		ID:        uuid.New(),
		Title:     "Coffee Beans",
		Slug:      "coffee-beans",
		UnitPrice: 14.50,
		Inventory: 120,
	}

	patched, err := applyProductMergePatch(current, []byte(`{"unit_price": 12.00, "inventory": 90}`))
	require.NoError(t, err)

	assert.Equal(t, current.ID, patched.ID)
	assert.Equal(t, "Coffee Beans", patched.Title)
	assert.Equal(t, 12.00, patched.UnitPrice)
	assert.Equal(t, 90, patched.Inventory)
}

func TestApplyProductMergePatch_NullClearsOptionalField(t *testing.T) {
	current := &models.Product{
		ID:          uuid.New(),
		Title:       "Coffee Beans",
		Description: strPtr("dark roast"),
		UnitPrice:   14.50,
	}

	patched, err := applyProductMergePatch(current, []byte(`{"description": null}`))
	require.NoError(t, err)
	assert.Nil(t, patched.Description)
}

func TestApplyProductMergePatch_IDIsNotPatchable(t *testing.T) {
	current := &models.Product{ID: uuid.New(), Title: "Coffee Beans", UnitPrice: 14.50}
	other := uuid.New()

	patched, err := applyProductMergePatch(current, []byte(`{"id": "`+other.String()+`"}`))
	require.NoError(t, err)
	assert.Equal(t, current.ID, patched.ID)
}

func TestApplyProductMergePatch_RejectsInvalidResult(t *testing.T) {
	current := &models.Product{ID: uuid.New(), Title: "Coffee Beans", UnitPrice: 14.50}

	_, err := applyProductMergePatch(current, []byte(`{"title": ""}`))
	assert.Error(t, err)

	_, err = applyProductMergePatch(current, []byte(`{"unit_price": -1}`))
	assert.Error(t, err)
}

func TestApplyProductMergePatch_RejectsMalformedPatch(t *testing.T) {
	current := &models.Product{ID: uuid.New(), Title: "Coffee Beans", UnitPrice: 14.50}

	_, err := applyProductMergePatch(current, []byte(`{not json`))
	assert.Error(t, err)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		slug  string
	}{
		{"Coffee Beans", "coffee-beans"},
		{"  Espresso  Machine  ", "espresso-machine"},
		{"100% Arabica!", "100-arabica"},
		{"Tea", "tea"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.slug, Slugify(tt.title), "title %q", tt.title)
	}
}
