package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storelab/storefront/common/logger"
	"github.com/storelab/storefront/common/models"
	"github.com/storelab/storefront/common/repository"
	"github.com/storelab/storefront/common/tagging"
)

// TaggingService handles tag lifecycle and associations. The association
// operations delegate to the generic store; the service adds label
// validation and entity expansion on top.
type TaggingService struct {
	tags  *repository.TagRepository
	store *tagging.Store
	log   *logger.Logger
}

// NewTaggingService creates a new tagging service
func NewTaggingService(tags *repository.TagRepository, store *tagging.Store, log *logger.Logger) *TaggingService {
	return &TaggingService{
		tags:  tags,
		store: store,
		log:   log,
	}
}

// CreateTag creates a new tag
func (s *TaggingService) CreateTag(ctx context.Context, label string) (*models.Tag, error) {
	if msg := ValidateTagLabel(label); msg != "" {
		return nil, fmt.Errorf("invalid tag label: %s", msg)
	}

	tag := &models.Tag{
		ID:        uuid.New(),
		Label:     label,
		CreatedAt: time.Now(),
	}

	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.log.Info("created tag", "tag_id", tag.ID, "label", label)
	return tag, nil
}

// GetTag retrieves a tag by id
func (s *TaggingService) GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

// ListTags retrieves all tags
func (s *TaggingService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.tags.List(ctx)
}

// DeleteTag deletes a tag; its associations cascade with it
func (s *TaggingService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("deleted tag", "tag_id", id)
	return nil
}

// ApplyTag associates a tag with an entity
func (s *TaggingService) ApplyTag(ctx context.Context, tagID uuid.UUID, targetType string, targetID uuid.UUID) (*models.TaggedItem, error) {
	return s.store.Apply(ctx, tagID, targetType, targetID)
}

// RemoveTag removes an association; reports whether one was removed
func (s *TaggingService) RemoveTag(ctx context.Context, tagID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error) {
	return s.store.Remove(ctx, tagID, targetType, targetID)
}

// TagsFor returns all tags applied to one entity
func (s *TaggingService) TagsFor(ctx context.Context, targetType string, targetID uuid.UUID) ([]models.Tag, error) {
	return s.store.TagsFor(ctx, targetType, targetID)
}

// TaggedItem is one resolved association. Entity is nil when the target
// was deleted after tagging; callers decide whether to surface or skip
// such stale rows.
type TaggedItem struct {
	TargetID uuid.UUID `json:"target_id"`
	Found    bool      `json:"found"`
	Entity   any       `json:"entity,omitempty"`
}

// ItemsFor returns the ids of all entities of one type carrying the tag
func (s *TaggingService) ItemsFor(ctx context.Context, tagID uuid.UUID, targetType string) ([]uuid.UUID, error) {
	return s.store.ItemsFor(ctx, tagID, targetType)
}

// ResolveItems returns all entities of one type carrying the tag, loaded
// through the resolver registry. Stale associations come back with
// Found == false instead of failing the whole listing.
func (s *TaggingService) ResolveItems(ctx context.Context, tagID uuid.UUID, targetType string) ([]TaggedItem, error) {
	ids, err := s.store.ItemsFor(ctx, tagID, targetType)
	if err != nil {
		return nil, err
	}

	items := make([]TaggedItem, 0, len(ids))
	for _, id := range ids {
		entity, found, err := s.store.Resolve(ctx, targetType, id)
		if err != nil {
			return nil, err
		}
		items = append(items, TaggedItem{
			TargetID: id,
			Found:    found,
			Entity:   entity,
		})
	}

	return items, nil
}

// Resolve loads a single entity through the resolver registry
func (s *TaggingService) Resolve(ctx context.Context, targetType string, targetID uuid.UUID) (any, bool, error) {
	return s.store.Resolve(ctx, targetType, targetID)
}
