package ports

import (
	"context"
	"time"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

// ProfileRepository stores the singleton profile under a fixed key.
type ProfileRepository interface {
	// Get returns domain.ErrProfileNotFound when no profile exists.
	Get(ctx context.Context) (*domain.Profile, error)
	// Upsert merges the patch into the singleton, creating it when absent.
	// Creation requires a name; without one and with no profile stored it
	// returns a validation error. created reports whether a document was
	// inserted. Concurrent calls never produce more than one document.
	Upsert(ctx context.Context, patch domain.ProfilePatch, now time.Time) (profile *domain.Profile, created bool, err error)
}

// ProfileCache is an optional cache for the public profile. Readers fill it
// with Fill, which never replaces a value; writers replace it with Set.
type ProfileCache interface {
	Get(ctx context.Context) (*domain.Profile, bool, error)
	Fill(ctx context.Context, profile *domain.Profile) error
	Set(ctx context.Context, profile *domain.Profile) error
	Invalidate(ctx context.Context) error
}

type ProfileService interface {
	GetProfile(ctx context.Context) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, patch domain.ProfilePatch) (profile *domain.Profile, created bool, err error)
}
