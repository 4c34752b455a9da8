package tagging

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storelab/storefront/common/logger"
	"github.com/storelab/storefront/common/models"
)

// Repository is the storage port for tag associations. The Postgres
// implementation lives in common/repository; MemoryRepository in this
// package backs tests and single-process setups.
type Repository interface {
	// TagExists reports whether the tag row exists
	TagExists(ctx context.Context, tagID uuid.UUID) (bool, error)

	// Upsert inserts the association or returns the existing row when the
	// (tag_id, target_type, target_id) triple is already present
	Upsert(ctx context.Context, item *models.TaggedItem) (*models.TaggedItem, error)

	// Delete removes the association and reports whether a row was removed
	Delete(ctx context.Context, tagID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error)

	// TagsFor returns all tags applied to the given entity, unordered
	TagsFor(ctx context.Context, targetType string, targetID uuid.UUID) ([]models.Tag, error)

	// ItemsFor returns the ids of all entities of one type carrying the tag
	ItemsFor(ctx context.Context, tagID uuid.UUID, targetType string) ([]uuid.UUID, error)
}

// Store associates tags with entities of any registered type without
// per-type foreign keys. Each call is one atomic unit against the
// underlying storage; the store keeps no in-process state and performs
// no caching or retries — storage errors propagate to the caller
// unchanged.
type Store struct {
	repo     Repository
	registry *Registry
	log      *logger.Logger
}

// NewStore creates a new association store
func NewStore(repo Repository, registry *Registry, log *logger.Logger) *Store {
	return &Store{
		repo:     repo,
		registry: registry,
		log:      log,
	}
}

// Registry returns the resolver registry the store consults
func (s *Store) Registry() *Registry {
	return s.registry
}

// Apply associates a tag with an entity. Returns NotFoundError when the
// tag does not exist and ConfigurationError for an unregistered target
// type. Re-applying an existing association is an idempotent no-op: the
// unique index on (tag_id, target_type, target_id) serializes concurrent
// callers and the existing row is returned.
func (s *Store) Apply(ctx context.Context, tagID uuid.UUID, targetType string, targetID uuid.UUID) (*models.TaggedItem, error) {
	if !s.registry.Known(targetType) {
		return nil, &ConfigurationError{TargetType: targetType}
	}

	exists, err := s.repo.TagExists(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to check tag existence: %w", err)
	}
	if !exists {
		return nil, &NotFoundError{Resource: "tag", ID: tagID.String()}
	}

	item, err := s.repo.Upsert(ctx, &models.TaggedItem{
		ID:         uuid.New(),
		TagID:      tagID,
		TargetType: targetType,
		TargetID:   targetID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply tag: %w", err)
	}

	s.log.Info("tag applied",
		"tag_id", tagID,
		"target_type", targetType,
		"target_id", targetID,
	)

	return item, nil
}

// Remove deletes the association if present and reports whether a row was
// removed. A missing association is not an error.
func (s *Store) Remove(ctx context.Context, tagID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error) {
	if !s.registry.Known(targetType) {
		return false, &ConfigurationError{TargetType: targetType}
	}

	removed, err := s.repo.Delete(ctx, tagID, targetType, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to remove tag: %w", err)
	}

	if removed {
		s.log.Info("tag removed",
			"tag_id", tagID,
			"target_type", targetType,
			"target_id", targetID,
		)
	}

	return removed, nil
}

// TagsFor returns all tags applied to the given entity. An entity with no
// associations yields an empty slice, never an error.
func (s *Store) TagsFor(ctx context.Context, targetType string, targetID uuid.UUID) ([]models.Tag, error) {
	if !s.registry.Known(targetType) {
		return nil, &ConfigurationError{TargetType: targetType}
	}

	tags, err := s.repo.TagsFor(ctx, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

// ItemsFor returns the ids of all entities of the given type carrying the
// tag. The target type is mandatory: an id is meaningless to the store
// without the type that tells a resolver how to interpret it.
func (s *Store) ItemsFor(ctx context.Context, tagID uuid.UUID, targetType string) ([]uuid.UUID, error) {
	if !s.registry.Known(targetType) {
		return nil, &ConfigurationError{TargetType: targetType}
	}

	ids, err := s.repo.ItemsFor(ctx, tagID, targetType)
	if err != nil {
		return nil, fmt.Errorf("failed to list tagged items: %w", err)
	}

	return ids, nil
}

// Resolve loads the entity behind an association through the registered
// resolver. The store itself never knows how to fetch a product versus a
// customer; that indirection is what keeps it polymorphic over an open
// set of target types. A registered type with a missing id reports
// found == false — stale associations are an accepted trade-off of the
// generic design, not an error.
func (s *Store) Resolve(ctx context.Context, targetType string, targetID uuid.UUID) (any, bool, error) {
	return s.registry.Resolve(ctx, targetType, targetID)
}
