package ports

import (
	"context"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

// ResourceRepository persists one collection of resources.
type ResourceRepository[T domain.Resource] interface {
	List(ctx context.Context, filter domain.ResourceFilter) ([]T, error)
	// FindByID returns a domain.ErrNotFound error when the id does not resolve.
	FindByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) error
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, id string) error
}

// ResourceService is the uniform CRUD contract of the public collections.
// Public reads hide unpublished items of publishable collections.
type ResourceService[T domain.Resource, P domain.Patch[T]] interface {
	List(ctx context.Context, includeDrafts bool) ([]T, error)
	Get(ctx context.Context, id string, includeDrafts bool) (T, error)
	Create(ctx context.Context, fields P) (T, error)
	Update(ctx context.Context, id string, fields P) (T, error)
	Delete(ctx context.Context, id string) error
}
