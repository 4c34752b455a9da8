package service

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/storelab/storefront/cmd/storefront/models"
)

// FilterEvaluator evaluates product filter expressions using CEL
// (Common Expression Language). Expressions see one product at a time and
// can combine conditions freely, e.g.
//
//	inventory < 10 || unit_price < 20.0
//	title.contains("coffee") && !(unit_price > 30.0)
type FilterEvaluator struct {
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewFilterEvaluator creates a new filter evaluator with caching
func NewFilterEvaluator() *FilterEvaluator {
	return &FilterEvaluator{
		cache: make(map[string]cel.Program),
	}
}

// Matches evaluates the expression against one product
func (e *FilterEvaluator) Matches(expr string, product models.Product) (bool, error) {
	// Check cache first
	e.mu.RLock()
	prg, exists := e.cache[expr]
	e.mu.RUnlock()

	if !exists {
		// Compile and cache
		var err error
		prg, err = e.compile(expr)
		if err != nil {
			return false, err
		}

		e.mu.Lock()
		e.cache[expr] = prg
		e.mu.Unlock()
	}

	description := ""
	if product.Description != nil {
		description = *product.Description
	}

	// Evaluate
	out, _, err := prg.Eval(map[string]interface{}{
		"title":       product.Title,
		"description": description,
		"unit_price":  product.UnitPrice,
		"inventory":   int64(product.Inventory),
	})

	if err != nil {
		return false, fmt.Errorf("filter evaluation error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter expression did not return boolean, got %T", out.Value())
	}

	return result, nil
}

// Filter returns the products matching the expression. An empty
// expression matches everything.
func (e *FilterEvaluator) Filter(expr string, products []models.Product) ([]models.Product, error) {
	if expr == "" {
		return products, nil
	}

	matched := make([]models.Product, 0, len(products))
	for _, product := range products {
		ok, err := e.Matches(expr, product)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, product)
		}
	}

	return matched, nil
}

// compile compiles a CEL expression over the product fields
func (e *FilterEvaluator) compile(expr string) (cel.Program, error) {
	env, err := cel.NewEnv(
		cel.Variable("title", cel.StringType),
		cel.Variable("description", cel.StringType),
		cel.Variable("unit_price", cel.DoubleType),
		cel.Variable("inventory", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("filter compilation error: %w", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return prg, nil
}

// ClearCache clears the compiled expression cache
func (e *FilterEvaluator) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]cel.Program)
}
