// Package app assembles the repositories selected by configuration. It is
// shared by the API server and the seed-admin command.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
	"github.com/scholarfolio/portfolio-api/internal/infrastructure/db/memory"
	"github.com/scholarfolio/portfolio-api/internal/infrastructure/db/mongo"
	"github.com/scholarfolio/portfolio-api/internal/pkg/config"
)

// Stores groups the repositories of every collection.
type Stores struct {
	Admins   ports.AdminRepository
	Profiles ports.ProfileRepository
	Papers   ports.ResourceRepository[*domain.Paper]
	Courses  ports.ResourceRepository[*domain.Course]
	Blogs    ports.ResourceRepository[*domain.Blog]
	Videos   ports.ResourceRepository[*domain.Video]

	// DB is nil for the memory store.
	DB *mongodrv.Database

	client *mongodrv.Client
}

// OpenStores connects the configured store. With STORE=mongo an unreachable
// server or an index failure is returned as an error.
func OpenStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return &Stores{
			Admins:   memory.NewAdminRepository(),
			Profiles: memory.NewProfileRepository(),
			Papers:   memory.NewResourceRepository(domain.KindPaper, domain.ComparePapers),
			Courses:  memory.NewResourceRepository[*domain.Course](domain.KindCourse, nil),
			Blogs:    memory.NewResourceRepository[*domain.Blog](domain.KindBlog, nil),
			Videos:   memory.NewResourceRepository[*domain.Video](domain.KindVideo, nil),
		}, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "portfolio-api",
	})
	if err != nil {
		return nil, err
	}

	admins := mongo.NewAdminRepository(db)
	papers := mongo.NewResourceRepository[*domain.Paper](db, domain.KindPaper, mongo.PaperCollection)
	courses := mongo.NewResourceRepository[*domain.Course](db, domain.KindCourse, mongo.CourseCollection)
	blogs := mongo.NewResourceRepository[*domain.Blog](db, domain.KindBlog, mongo.BlogCollection)
	videos := mongo.NewResourceRepository[*domain.Video](db, domain.KindVideo, mongo.VideoCollection)

	if err := mongo.EnsureIndexes(ctx, admins, papers, courses, blogs, videos); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	return &Stores{
		Admins:   admins,
		Profiles: mongo.NewProfileRepository(db),
		Papers:   papers,
		Courses:  courses,
		Blogs:    blogs,
		Videos:   videos,
		DB:       db,
		client:   client,
	}, nil
}

// Close disconnects from the database, if any.
func (s *Stores) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// EnsureAdmin creates the configured bootstrap administrator unless one with
// that email already exists. It does nothing when no bootstrap admin is set.
func EnsureAdmin(ctx context.Context, admins ports.AdminService, cfg config.AdminConfig) (created bool, err error) {
	if !cfg.Enabled() {
		return false, nil
	}

	_, err = admins.FindByEmail(ctx, cfg.Email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, domain.ErrAdminNotFound):
		return false, fmt.Errorf("look up bootstrap admin: %w", err)
	}

	_, err = admins.Create(ctx, ports.CreateAdminInput{
		Name:     cfg.Name,
		Email:    cfg.Email,
		Password: cfg.Password,
	})
	if errors.Is(err, domain.ErrAdminExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create bootstrap admin: %w", err)
	}
	return true, nil
}
