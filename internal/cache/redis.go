// Package cache wraps the Redis client and small caching helpers.
// Redis is optional: every helper degrades to a no-op when the client is
// nil, so the API keeps working without it.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"blueddit/internal/middleware"
)

// Client is the shared Redis client; nil when Redis is unavailable.
var Client *redis.Client

// InitRedis connects to Redis at addr. A failed ping leaves Client nil and
// the application running without a cache.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis connection failed, continuing without cache", "error", err.Error())
		Client = nil
	} else {
		middleware.Logger.Info("Redis connected successfully")
	}
}

// GetClient returns the shared client, or nil.
func GetClient() *redis.Client {
	return Client
}
