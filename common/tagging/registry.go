package tagging

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Resolver loads one entity of a single target type by id. The boolean
// reports whether the entity exists; a missing id is a normal outcome,
// not an error.
type Resolver func(ctx context.Context, id uuid.UUID) (any, bool, error)

// Registry maps target type discriminators to their resolvers. Each
// taggable module registers its own resolver at composition time, which
// keeps the set of taggable types explicit and statically enumerable
// instead of discovered through runtime type inspection.
type Registry struct {
	resolvers map[string]Resolver
	mu        sync.RWMutex
}

// NewRegistry creates an empty resolver registry
func NewRegistry() *Registry {
	return &Registry{
		resolvers: make(map[string]Resolver),
	}
}

// Register installs the resolver for a target type, replacing any
// previous registration. Call during container wiring, before serving.
func (r *Registry) Register(targetType string, fn Resolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolvers[targetType] = fn
}

// Known reports whether a resolver is registered for the target type
func (r *Registry) Known(targetType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.resolvers[targetType]
	return ok
}

// Types returns all registered target types, sorted
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.resolvers))
	for t := range r.resolvers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Resolve looks up an entity through the registered resolver. An
// unregistered target type is a ConfigurationError.
func (r *Registry) Resolve(ctx context.Context, targetType string, id uuid.UUID) (any, bool, error) {
	r.mu.RLock()
	fn, ok := r.resolvers[targetType]
	r.mu.RUnlock()

	if !ok {
		return nil, false, &ConfigurationError{TargetType: targetType}
	}

	return fn(ctx, id)
}
