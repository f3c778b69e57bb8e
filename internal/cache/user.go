package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hormonya/hormonya/internal/model"
)

// Cache key prefixes and TTLs.
const (
	userKeyPrefix     = "user:"
	negCacheKeySuffix = ":neg"

	// DefaultUserTTL is the TTL for cached user rows.
	DefaultUserTTL = time.Hour

	// NegativeCacheTTL is the TTL for "no such email" entries.
	NegativeCacheTTL = 5 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// UserCache stores user rows keyed by email.
type UserCache struct {
	c   *Cache
	ttl time.Duration
}

// NewUserCache wraps c with user-row helpers. A non-positive ttl uses DefaultUserTTL.
func NewUserCache(c *Cache, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = DefaultUserTTL
	}
	return &UserCache{c: c, ttl: ttl}
}

func userKey(email string) string {
	return userKeyPrefix + email
}

// GetUser retrieves a user by email.
// Returns ErrCacheMiss if not found.
func (u *UserCache) GetUser(ctx context.Context, email string) (*model.User, error) {
	cmd := u.c.client.HGetAll(ctx, userKey(email))
	result, err := cmd.Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	var cached model.CachedUser
	if err := cmd.Scan(&cached); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}

	return cached.ToUser(), nil
}

// SetUser stores a user and clears any negative entry for its email.
func (u *UserCache) SetUser(ctx context.Context, user *model.User) error {
	key := userKey(user.Email)
	cached := user.ToCachedUser()

	fields := map[string]any{
		"id":     cached.ID,
		"email":  cached.Email,
		"name":   cached.Name,
		"age":    cached.Age,
		"gender": cached.Gender,
		"height": cached.Height,
		"weight": cached.Weight,
		"bmi":    cached.BMI,
	}

	pipe := u.c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, u.ttl)
	pipe.Del(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// DeleteUser removes a user and its negative entry from cache.
func (u *UserCache) DeleteUser(ctx context.Context, email string) error {
	key := userKey(email)

	pipe := u.c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.Del(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}

	return nil
}

// IsNegativelyCached checks if an email is known to have no account.
func (u *UserCache) IsNegativelyCached(ctx context.Context, email string) (bool, error) {
	exists, err := u.c.client.Exists(ctx, userKey(email)+negCacheKeySuffix).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check negative cache: %w", err)
	}

	return exists > 0, nil
}

// SetNegativeCache marks an email as having no account.
func (u *UserCache) SetNegativeCache(ctx context.Context, email string) error {
	err := u.c.client.SetEx(ctx, userKey(email)+negCacheKeySuffix, "", NegativeCacheTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to set negative cache: %w", err)
	}

	return nil
}
