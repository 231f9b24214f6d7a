package memory

import (
	"context"
	"sync"
	"time"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

// ProfileRepository holds the singleton profile; a single mutex serializes
// upserts so concurrent first writes create exactly one profile.
type ProfileRepository struct {
	mu      sync.Mutex
	profile *domain.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

func (r *ProfileRepository) Get(_ context.Context) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	p := *r.profile
	return &p, nil
}

func (r *ProfileRepository) Upsert(_ context.Context, patch domain.ProfilePatch, now time.Time) (*domain.Profile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := false
	if r.profile == nil {
		if !patch.HasName() {
			return nil, false, domain.Invalid("name is required")
		}
		r.profile = &domain.Profile{ID: domain.ProfileKey, CreatedAt: now}
		created = true
	}

	patch.ApplyTo(r.profile)
	r.profile.UpdatedAt = now

	p := *r.profile
	return &p, created, nil
}
