package service

import (
	"testing"

	"github.com/storelab/storefront/cmd/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleProducts() []models.Product {
	return []models.Product{
		{Title: "Coffee Beans", Description: strPtr("dark roast"), UnitPrice: 14.50, Inventory: 120},
		{Title: "Espresso Machine", UnitPrice: 349.99, Inventory: 4},
		{Title: "Tea Sampler", Description: strPtr("assorted"), UnitPrice: 18.00, Inventory: 60},
	}
}

func TestFilterEvaluator_Matches(t *testing.T) {
	eval := NewFilterEvaluator()
	products := sampleProducts()

	tests := []struct {
		name    string
		expr    string
		matches []string
	}{
		{
			name:    "price threshold",
			expr:    `unit_price < 20.0`,
			matches: []string{"Coffee Beans", "Tea Sampler"},
		},
		{
			name:    "low inventory or cheap",
			expr:    `inventory < 10 || unit_price < 20.0`,
			matches: []string{"Coffee Beans", "Espresso Machine", "Tea Sampler"},
		},
		{
			name:    "title contains with conjunction",
			expr:    `title.contains("Coffee") && unit_price < 20.0`,
			matches: []string{"Coffee Beans"},
		},
		{
			name:    "negation",
			expr:    `!(unit_price > 30.0)`,
			matches: []string{"Coffee Beans", "Tea Sampler"},
		},
		{
			name:    "description of products without one is empty",
			expr:    `description == ""`,
			matches: []string{"Espresso Machine"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := eval.Filter(tt.expr, products)
			require.NoError(t, err)

			titles := make([]string, 0, len(matched))
			for _, p := range matched {
				titles = append(titles, p.Title)
			}
			assert.ElementsMatch(t, tt.matches, titles)
		})
	}
}

func TestFilterEvaluator_EmptyExpressionMatchesAll(t *testing.T) {
	eval := NewFilterEvaluator()
	products := sampleProducts()

	matched, err := eval.Filter("", products)
	require.NoError(t, err)
	assert.Len(t, matched, len(products))
}

func TestFilterEvaluator_CompileErrorSurfaces(t *testing.T) {
	eval := NewFilterEvaluator()

	_, err := eval.Matches(`unit_price <<< 3`, models.Product{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter compilation error")
}

func TestFilterEvaluator_NonBooleanExpressionRejected(t *testing.T) {
	eval := NewFilterEvaluator()

	_, err := eval.Matches(`unit_price + 1.0`, models.Product{UnitPrice: 5})
	require.Error(t, err)
}

func TestFilterEvaluator_CachesCompiledPrograms(t *testing.T) {
	eval := NewFilterEvaluator()

	_, err := eval.Matches(`inventory > 0`, models.Product{Inventory: 1})
	require.NoError(t, err)

	eval.mu.RLock()
	_, cached := eval.cache[`inventory > 0`]
	eval.mu.RUnlock()
	assert.True(t, cached)

	eval.ClearCache()

	eval.mu.RLock()
	assert.Empty(t, eval.cache)
	eval.mu.RUnlock()
}
