package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

const (
	profileCacheKey   = "portfolio:profile"
	defaultProfileTTL = 5 * time.Minute
)

// ProfileCache caches the public profile as JSON under a single key.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache wraps client. A non-positive ttl uses five minutes.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

// Get reports a miss as ok=false with a nil error.
func (c *ProfileCache) Get(ctx context.Context) (*domain.Profile, bool, error) {
	raw, err := c.client.Get(ctx, profileCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("profile cache get: %w", err)
	}

	var p domain.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false, fmt.Errorf("profile cache decode: %w", err)
	}
	return &p, true, nil
}

// Fill stores profile only when the key is absent, so a reader holding an
// older copy never replaces what a writer stored in the meantime.
func (c *ProfileCache) Fill(ctx context.Context, profile *domain.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.SetNX(ctx, profileCacheKey, raw, c.ttl).Err()
}

func (c *ProfileCache) Set(ctx context.Context, profile *domain.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, profileCacheKey, raw, c.ttl).Err()
}

func (c *ProfileCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, profileCacheKey).Err()
}
