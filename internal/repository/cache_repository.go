package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"streak-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// StreakCache keeps a JSON snapshot of a user's streak document in Redis so
// read-heavy views skip Mongo. Entries expire on TTL and are invalidated on
// every report.
type StreakCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStreakCache(client *redis.Client, ttl time.Duration) *StreakCache {
	return &StreakCache{client: client, ttl: ttl}
}

func cacheKey(userID string) string {
	return "streak:" + userID
}

func (c *StreakCache) Get(ctx context.Context, userID string) (*models.Streak, error) {
	raw, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error get streak in cache: %w", err)
	}
	var streak models.Streak
	if err := json.Unmarshal(raw, &streak); err != nil {
		return nil, fmt.Errorf("error decoding cached streak: %w", err)
	}
	return &streak, nil
}

func (c *StreakCache) Set(ctx context.Context, streak *models.Streak) error {
	raw, err := json.Marshal(streak)
	if err != nil {
		return fmt.Errorf("error saving streak to cache: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(streak.UserID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("error saving streak to cache: %w", err)
	}
	return nil
}

func (c *StreakCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("error invalidating cached streak: %w", err)
	}
	return nil
}
