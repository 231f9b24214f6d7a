package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func profileDoc(name string) bson.D {
	return bson.D{
		{Key: "_id", Value: domain.ProfileKey},
		{Key: "name", Value: name},
		{Key: "created_at", Value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Key: "updated_at", Value: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func profileCursor(mt *mtest.T, name string) bson.D {
	ns := mt.DB.Name() + "." + profileCollection
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, profileDoc(name))
}

func updateResponse(n, modified int32, upserted bool) bson.D {
	fields := []bson.E{{Key: "n", Value: n}, {Key: "nModified", Value: modified}}
	if upserted {
		fields = append(fields, bson.E{Key: "upserted", Value: bson.A{
			bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: domain.ProfileKey}},
		}})
	}
	return mtest.CreateSuccessResponse(fields...)
}

func TestProfileRepository_Upsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	now := time.Now().UTC()

	mt.Run("creates when the server reports an upsert", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		mt.AddMockResponses(updateResponse(1, 0, true), profileCursor(mt, "Ada"))

		p, created, err := repo.Upsert(context.Background(), domain.ProfilePatch{Name: strPtr("Ada")}, now)
		if err != nil {
			mt.Fatalf("upsert: %v", err)
		}
		if !created || p.Name != "Ada" || p.ID != domain.ProfileKey {
			mt.Fatalf("expected a created profile, got %+v created=%v", p, created)
		}

		cmd := mt.GetStartedEvent().Command
		update := cmd.Lookup("updates").Array().Index(0).Value().Document()
		if upsert, ok := update.Lookup("upsert").BooleanOK(); !ok || !upsert {
			mt.Fatalf("expected upsert:true with a name, got %v", update)
		}
		if _, err := update.LookupErr("u", "$setOnInsert", "created_at"); err != nil {
			mt.Fatalf("expected created_at only on insert: %v", err)
		}
	})

	mt.Run("updates an existing profile", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		mt.AddMockResponses(updateResponse(1, 1, false), profileCursor(mt, "Ada Lovelace"))

		p, created, err := repo.Upsert(context.Background(), domain.ProfilePatch{Name: strPtr("Ada Lovelace")}, now)
		if err != nil {
			mt.Fatalf("upsert: %v", err)
		}
		if created || p.Name != "Ada Lovelace" {
			mt.Fatalf("expected an update, got %+v created=%v", p, created)
		}
	})

	mt.Run("without a name it never inserts", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		mt.AddMockResponses(updateResponse(0, 0, false))

		_, _, err := repo.Upsert(context.Background(), domain.ProfilePatch{Bio: strPtr("hi")}, now)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Message != "name is required" {
			mt.Fatalf("expected name is required, got %v", err)
		}

		update := mt.GetStartedEvent().Command.Lookup("updates").Array().Index(0).Value().Document()
		if upsert, ok := update.Lookup("upsert").BooleanOK(); ok && upsert {
			mt.Fatal("a patch without a name must not upsert")
		}
		if _, err := update.LookupErr("u", "$setOnInsert"); err == nil {
			mt.Fatal("a patch without a name must not carry $setOnInsert")
		}
	})

	mt.Run("retries a lost insert race as an update", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			updateResponse(1, 1, false),
			profileCursor(mt, "Ada"),
		)

		p, created, err := repo.Upsert(context.Background(), domain.ProfilePatch{Name: strPtr("Ada")}, now)
		if err != nil {
			mt.Fatalf("upsert: %v", err)
		}
		if created || p.Name != "Ada" {
			mt.Fatalf("the losing writer must report an update, got %+v created=%v", p, created)
		}

		var updates int
		for _, ev := range mt.GetAllStartedEvents() {
			if ev.CommandName == "update" {
				updates++
			}
		}
		if updates != 2 {
			mt.Fatalf("expected the update to be retried once, got %d update commands", updates)
		}
	})

	mt.Run("surfaces other write errors", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 2, Message: "bad value"}))

		_, _, err := repo.Upsert(context.Background(), domain.ProfilePatch{Name: strPtr("Ada")}, now)
		var ve *domain.ValidationError
		if err == nil || errors.As(err, &ve) {
			mt.Fatalf("expected a storage error, got %v", err)
		}
	})
}

func TestProfileRepository_GetMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no document", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		ns := mt.DB.Name() + "." + profileCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		if _, err := repo.Get(context.Background()); !errors.Is(err, domain.ErrProfileNotFound) {
			mt.Fatalf("expected ErrProfileNotFound, got %v", err)
		}
	})
}
