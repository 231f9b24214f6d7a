package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

// ResourceService implements the uniform CRUD contract for one collection.
type ResourceService[T domain.Resource, P domain.Patch[T]] struct {
	kind        string
	repo        ports.ResourceRepository[T]
	newItem     func() T
	publishable bool
	log         zerolog.Logger
	now         func() time.Time
}

// NewResourceService builds the service for kind. newItem returns an item
// carrying the collection's defaults; creation starts from it.
func NewResourceService[T domain.Resource, P domain.Patch[T]](
	kind string,
	repo ports.ResourceRepository[T],
	newItem func() T,
	log zerolog.Logger,
) *ResourceService[T, P] {
	_, publishable := any(newItem()).(domain.Publishable)
	return &ResourceService[T, P]{
		kind:        kind,
		repo:        repo,
		newItem:     newItem,
		publishable: publishable,
		log:         log.With().Str("resource", kind).Logger(),
		now:         time.Now,
	}
}

// List returns the collection; drafts are hidden unless includeDrafts.
func (s *ResourceService[T, P]) List(ctx context.Context, includeDrafts bool) ([]T, error) {
	items, err := s.repo.List(ctx, domain.ResourceFilter{PublishedOnly: s.publishable && !includeDrafts})
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", s.kind, err)
	}
	return items, nil
}

// Get returns one item. A draft looks missing unless includeDrafts.
func (s *ResourceService[T, P]) Get(ctx context.Context, id string, includeDrafts bool) (T, error) {
	var zero T

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if !includeDrafts {
		if p, ok := any(item).(domain.Publishable); ok && !p.IsPublished() {
			return zero, domain.NotFound(s.kind)
		}
	}
	return item, nil
}

func (s *ResourceService[T, P]) Create(ctx context.Context, fields P) (T, error) {
	var zero T

	item := s.newItem()
	fields.ApplyTo(item)
	if err := item.Validate(); err != nil {
		return zero, err
	}
	item.Stamp(storeTime(s.now))

	if err := s.repo.Create(ctx, item); err != nil {
		s.log.Error().Err(err).Msg("failed to create resource")
		return zero, fmt.Errorf("create %s: %w", s.kind, err)
	}

	s.log.Info().Str("id", item.ResourceID()).Msg("resource created")
	return item, nil
}

// Update merges fields onto the stored item; omitted fields keep their values.
func (s *ResourceService[T, P]) Update(ctx context.Context, id string, fields P) (T, error) {
	var zero T

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}

	fields.ApplyTo(item)
	if err := item.Validate(); err != nil {
		return zero, err
	}
	item.Stamp(storeTime(s.now))

	if err := s.repo.Update(ctx, item); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to update resource")
		return zero, fmt.Errorf("update %s: %w", s.kind, err)
	}

	s.log.Info().Str("id", id).Msg("resource updated")
	return item, nil
}

func (s *ResourceService[T, P]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("resource deleted")
	return nil
}

// storeTime truncates to the millisecond precision BSON dates keep, so a
// returned item compares equal to the stored one.
func storeTime(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Millisecond)
}
