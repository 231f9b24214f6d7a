package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

// ResourceRepository keeps one collection in insertion order. Items are
// stored as BSON so callers never share memory with the store.
type ResourceRepository[T domain.Resource] struct {
	kind  string
	cmp   func(a, b T) int
	mu    sync.RWMutex
	order []string
	docs  map[string][]byte
}

// NewResourceRepository lists newest first, then stable-sorts by cmp when it
// is not nil, so ties stay newest first.
func NewResourceRepository[T domain.Resource](kind string, cmp func(a, b T) int) *ResourceRepository[T] {
	return &ResourceRepository[T]{kind: kind, cmp: cmp, docs: make(map[string][]byte)}
}

func (r *ResourceRepository[T]) List(_ context.Context, filter domain.ResourceFilter) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]T, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		item, err := r.decode(r.docs[r.order[i]])
		if err != nil {
			return nil, err
		}
		if filter.PublishedOnly {
			if p, ok := any(item).(domain.Publishable); ok && !p.IsPublished() {
				continue
			}
		}
		items = append(items, item)
	}
	if r.cmp != nil {
		slices.SortStableFunc(items, r.cmp)
	}
	return items, nil
}

func (r *ResourceRepository[T]) FindByID(_ context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		var zero T
		return zero, domain.NotFound(r.kind)
	}
	return r.decode(doc)
}

func (r *ResourceRepository[T]) Create(_ context.Context, item T) error {
	if item.ResourceID() == "" {
		item.SetResourceID(primitive.NewObjectID().Hex())
	}
	doc, err := bson.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.kind, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = append(r.order, item.ResourceID())
	r.docs[item.ResourceID()] = doc
	return nil
}

func (r *ResourceRepository[T]) Update(_ context.Context, item T) error {
	doc, err := bson.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.kind, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[item.ResourceID()]; !ok {
		return domain.NotFound(r.kind)
	}
	r.docs[item.ResourceID()] = doc
	return nil
}

func (r *ResourceRepository[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return domain.NotFound(r.kind)
	}
	delete(r.docs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ResourceRepository[T]) decode(doc []byte) (T, error) {
	var item T
	if err := bson.Unmarshal(doc, &item); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", r.kind, err)
	}
	return item, nil
}
