package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// Nothing listens on port 1, so every command fails fast.
func unreachableRedis() *RedisCache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	c := unreachableRedis()
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, ok := c.Get(ctx, "amortization:v1:1000:5:12")
	assert.False(t, ok)

	err := c.Set(ctx, "amortization:v1:1000:5:12", "{}", time.Minute)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis set")

	assert.Error(t, c.Ping(ctx))
}
