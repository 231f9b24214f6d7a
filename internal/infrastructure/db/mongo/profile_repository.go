package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

const profileCollection = "profiles"

// ProfileRepository keeps the singleton profile under _id = domain.ProfileKey.
// The fixed key turns "at most one profile" into the _id uniqueness the
// server already enforces.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profileCollection)}
}

func (r *ProfileRepository) Get(ctx context.Context) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	if err := r.coll.FindOne(ctx, bson.M{"_id": domain.ProfileKey}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

// Upsert merges the patch with dotted $set paths in a single atomic update.
// Without a name the write never inserts, so creation always carries one.
func (r *ProfileRepository) Upsert(ctx context.Context, patch domain.ProfilePatch, now time.Time) (*domain.Profile, bool, error) {
	set := bson.M{"updated_at": now}
	for k, v := range patch.SetFields() {
		set[k] = v
	}

	filter := bson.M{"_id": domain.ProfileKey}
	update := bson.M{"$set": set}
	opts := options.Update()
	if patch.HasName() {
		update["$setOnInsert"] = bson.M{"created_at": now}
		opts.SetUpsert(true)
	}

	writeCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(writeCtx, filter, update, opts)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert inserted the document first; merge into it.
		res, err = r.coll.UpdateOne(writeCtx, filter, bson.M{"$set": set})
	}
	if err != nil {
		return nil, false, fmt.Errorf("upsert profile: %w", err)
	}

	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return nil, false, domain.Invalid("name is required")
	}

	p, err := r.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	return p, res.UpsertedCount > 0, nil
}
