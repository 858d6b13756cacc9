package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/persistence"
)

const userCacheTTL = 5 * time.Minute

// UserCache is a redis-backed read-through cache for user profile reads.
// Password hashes are never cached. All methods are nil-safe so the service
// degrades to direct repository reads when redis is not configured.
type UserCache struct {
	redis  *persistence.Redis
	logger *zap.Logger
}

// NewUserCache wraps the redis client.
func NewUserCache(r *persistence.Redis, logger *zap.Logger) *UserCache {
	return &UserCache{redis: r, logger: logger}
}

type cachedUser struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func userCacheKey(id string) string {
	return "user:" + id
}

// Get returns the cached user, if present.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	raw, err := c.redis.Client.Get(ctx, userCacheKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var cached cachedUser
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	return &domain.User{
		ID:        cached.ID,
		Name:      cached.Name,
		Email:     cached.Email,
		Role:      cached.Role,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}, true
}

// Set stores the user for subsequent reads.
func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	if c == nil || c.redis == nil || c.redis.Client == nil || user == nil {
		return
	}
	raw, err := json.Marshal(cachedUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, userCacheKey(user.ID), raw, userCacheTTL).Err(); err != nil {
		c.logger.Debug("user cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached entry after a write.
func (c *UserCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Del(ctx, userCacheKey(id)).Err(); err != nil {
		c.logger.Debug("user cache invalidate failed", zap.Error(err))
	}
}
