package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

// Collection names and listing order of the public collections.
var (
	PaperCollection  = CollectionSpec{Name: "papers", Sort: bson.D{{Key: "year", Value: -1}, {Key: "created_at", Value: -1}}}
	CourseCollection = CollectionSpec{Name: "courses", Sort: bson.D{{Key: "created_at", Value: -1}}}
	BlogCollection   = CollectionSpec{Name: "blogs", Sort: bson.D{{Key: "created_at", Value: -1}}}
	VideoCollection  = CollectionSpec{Name: "videos", Sort: bson.D{{Key: "created_at", Value: -1}}}
)

// CollectionSpec names a collection and its default listing order.
type CollectionSpec struct {
	Name string
	Sort bson.D
}

// ResourceRepository implements ports.ResourceRepository for one collection.
// Documents are keyed by the hex form of a fresh ObjectID.
type ResourceRepository[T domain.Resource] struct {
	kind string
	spec CollectionSpec
	coll *mongo.Collection
}

func NewResourceRepository[T domain.Resource](db *mongo.Database, kind string, spec CollectionSpec) *ResourceRepository[T] {
	return &ResourceRepository[T]{kind: kind, spec: spec, coll: db.Collection(spec.Name)}
}

// EnsureIndexes creates the listing indexes.
func (r *ResourceRepository[T]) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: r.spec.Sort},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ResourceRepository[T]) List(ctx context.Context, filter domain.ResourceFilter) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.PublishedOnly {
		query["published"] = true
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(r.spec.Sort))
	if err != nil {
		return nil, fmt.Errorf("find %ss: %w", r.kind, err)
	}

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %ss: %w", r.kind, err)
	}
	return items, nil
}

func (r *ResourceRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item T
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, domain.NotFound(r.kind)
		}
		return zero, fmt.Errorf("find %s: %w", r.kind, err)
	}
	return item, nil
}

func (r *ResourceRepository[T]) Create(ctx context.Context, item T) error {
	if item.ResourceID() == "" {
		item.SetResourceID(primitive.NewObjectID().Hex())
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, item)
	return err
}

func (r *ResourceRepository[T]) Update(ctx context.Context, item T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": item.ResourceID()}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFound(r.kind)
	}
	return nil
}

func (r *ResourceRepository[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.kind, err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound(r.kind)
	}
	return nil
}
