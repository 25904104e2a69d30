package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/connectk/backend/internal/config"
)

var client *redis.Client
var redisEnabled bool

// Init connects to Redis. A missing Redis is not fatal: the engine falls
// back to memory-only sessions and games simply do not survive a restart.
func Init() error {
	addr := config.GetEnv("REDIS_URL", "localhost:6379")
	password := config.GetEnv("REDIS_PASSWORD", "")

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Warning: could not connect to Redis: %v. Sessions will be memory-only.", err)
		redisEnabled = false
		return nil
	}

	redisEnabled = true
	log.Println("[REDIS] Connected successfully")
	return nil
}

// Enabled returns whether Redis is available.
func Enabled() bool {
	return redisEnabled
}

// Close closes the Redis connection.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// Cache wraps redis.Client to implement the engine's CacheRepository.
type Cache struct {
	client *redis.Client
}

// NewCache returns a Cache over the initialized client.
func NewCache() *Cache {
	return &Cache{client: client}
}

// Set stores a key-value pair with expiration
func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

// Del deletes keys
func (c *Cache) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}
