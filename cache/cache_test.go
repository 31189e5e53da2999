package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fcnca-dashboard/qa"
)

func TestNilRedisClientIsSafe(t *testing.T) {
	var r *RedisClient
	ctx := context.Background()

	assert.ErrorIs(t, r.Set(ctx, "k", 1, time.Minute), ErrNotInitialized)
	var v int
	assert.ErrorIs(t, r.Get(ctx, "k", &v), ErrNotInitialized)
	assert.NoError(t, r.Close())
}

func TestAnswerCacheWithoutRedisMisses(t *testing.T) {
	ctx := context.Background()

	for _, c := range []*AnswerCache{nil, NewAnswerCache(nil)} {
		_, ok := c.GetAnswer(ctx, "key")
		assert.False(t, ok)
		assert.ErrorIs(t, c.SetAnswer(ctx, "key", qa.Answer{Text: "x"}, time.Minute), ErrNotInitialized)
	}
}

func TestAnswerCacheSatisfiesService(t *testing.T) {
	var _ qa.AnswerCache = (*AnswerCache)(nil)
}

func TestNewRedisClientUnreachableReturnsNil(t *testing.T) {
	if testing.Short() {
		t.Skip("dials a closed port")
	}
	assert.Nil(t, NewRedisClient("127.0.0.1", "1", ""))
}
