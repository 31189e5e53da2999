package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fcnca-dashboard/qa"
)

const answerKeyPrefix = "qa:answer:"

// AnswerCache stores QA answers in Redis. A nil AnswerCache or one without a
// Redis client always misses.
type AnswerCache struct {
	redis *RedisClient
}

// NewAnswerCache creates a new answer cache
func NewAnswerCache(redis *RedisClient) *AnswerCache {
	return &AnswerCache{redis: redis}
}

// GetAnswer returns the cached answer for key
func (c *AnswerCache) GetAnswer(ctx context.Context, key string) (*qa.Answer, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	var ans qa.Answer
	if err := c.redis.Get(ctx, answerKeyPrefix+key, &ans); err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.S().Warnf("⚠️  Answer cache read failed: %v", err)
		}
		return nil, false
	}
	return &ans, true
}

// SetAnswer caches answer under key for ttl
func (c *AnswerCache) SetAnswer(ctx context.Context, key string, answer qa.Answer, ttl time.Duration) error {
	if c == nil || c.redis == nil {
		return ErrNotInitialized
	}
	return c.redis.Set(ctx, answerKeyPrefix+key, answer, ttl)
}
