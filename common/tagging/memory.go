package tagging

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storelab/storefront/common/models"
)

type tripleKey struct {
	tagID      uuid.UUID
	targetType string
	targetID   uuid.UUID
}

// MemoryRepository is an in-memory Repository for tests and
// single-process setups. It mirrors the database semantics the Postgres
// implementation relies on: the unique triple constraint and the cascade
// from the tag side.
type MemoryRepository struct {
	tags  map[uuid.UUID]models.Tag
	items map[tripleKey]models.TaggedItem
	mu    sync.RWMutex
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		tags:  make(map[uuid.UUID]models.Tag),
		items: make(map[tripleKey]models.TaggedItem),
	}
}

// CreateTag inserts a tag row
func (r *MemoryRepository) CreateTag(ctx context.Context, tag models.Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[tag.ID] = tag
}

// DeleteTag removes a tag row and cascades to its associations, the way
// the tagged_item foreign key does in Postgres. Reports whether the tag
// existed.
func (r *MemoryRepository) DeleteTag(ctx context.Context, tagID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tags[tagID]; !ok {
		return false
	}
	delete(r.tags, tagID)

	for key := range r.items {
		if key.tagID == tagID {
			delete(r.items, key)
		}
	}
	return true
}

// TagExists reports whether the tag row exists
func (r *MemoryRepository) TagExists(ctx context.Context, tagID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tags[tagID]
	return ok, nil
}

// Upsert inserts the association or returns the existing row
func (r *MemoryRepository) Upsert(ctx context.Context, item *models.TaggedItem) (*models.TaggedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := tripleKey{tagID: item.TagID, targetType: item.TargetType, targetID: item.TargetID}
	if existing, ok := r.items[key]; ok {
		return &existing, nil
	}

	stored := *item
	stored.CreatedAt = time.Now()
	r.items[key] = stored
	return &stored, nil
}

// Delete removes the association and reports whether a row was removed
func (r *MemoryRepository) Delete(ctx context.Context, tagID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := tripleKey{tagID: tagID, targetType: targetType, targetID: targetID}
	if _, ok := r.items[key]; !ok {
		return false, nil
	}
	delete(r.items, key)
	return true, nil
}

// TagsFor returns all tags applied to the given entity
func (r *MemoryRepository) TagsFor(ctx context.Context, targetType string, targetID uuid.UUID) ([]models.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tags []models.Tag
	for key := range r.items {
		if key.targetType == targetType && key.targetID == targetID {
			if tag, ok := r.tags[key.tagID]; ok {
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}

// ItemsFor returns the ids of all entities of one type carrying the tag
func (r *MemoryRepository) ItemsFor(ctx context.Context, tagID uuid.UUID, targetType string) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []uuid.UUID
	for key := range r.items {
		if key.tagID == tagID && key.targetType == targetType {
			ids = append(ids, key.targetID)
		}
	}
	return ids, nil
}
