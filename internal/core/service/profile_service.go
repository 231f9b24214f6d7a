package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

// ProfileService manages the singleton profile.
type ProfileService struct {
	repo  ports.ProfileRepository
	cache ports.ProfileCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewProfileService returns a ProfileService. cache may be nil.
func NewProfileService(repo ports.ProfileRepository, cache ports.ProfileCache, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, cache: cache, log: log, now: time.Now}
}

// GetProfile returns the profile or domain.ErrProfileNotFound.
func (s *ProfileService) GetProfile(ctx context.Context) (*domain.Profile, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("profile cache read failed, using store")
		} else if ok {
			return cached, nil
		}
	}

	profile, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Fill(ctx, profile); err != nil {
			s.log.Warn().Err(err).Msg("profile cache fill failed")
		}
	}
	return profile, nil
}

// UpsertProfile merges patch into the singleton profile, creating it when
// none exists yet. created tells creation apart from update.
func (s *ProfileService) UpsertProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.Profile, bool, error) {
	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, false, err
	}

	profile, created, err := s.repo.Upsert(ctx, patch, storeTime(s.now))
	if err != nil {
		return nil, false, fmt.Errorf("upsert profile: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profile); err != nil {
			s.log.Warn().Err(err).Msg("profile cache write failed, invalidating")
			if err := s.cache.Invalidate(ctx); err != nil {
				s.log.Warn().Err(err).Msg("profile cache invalidation failed")
			}
		}
	}

	s.log.Info().Bool("created", created).Msg("profile saved")
	return profile, created, nil
}
