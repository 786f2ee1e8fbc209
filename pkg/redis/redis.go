// Package redis holds the shared connection backing the two pieces of
// state this service keeps outside the database: idempotency locks for
// the payment endpoints and the encrypted admin session.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

const pingTimeout = 5 * time.Second

// Init dials the server at url and verifies it answers before startup
// continues. An explicit password overrides any credential in the URL.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	rdb = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return rdb.Ping(ctx).Err()
}

// SetClient replaces the connection; tests point it at miniredis.
func SetClient(c *redis.Client) {
	rdb = c
}

// Get returns the value stored at key, redis.Nil when absent.
func Get(ctx context.Context, key string) (string, error) {
	return rdb.Get(ctx, key).Result()
}

// Set writes key with a TTL, overwriting any existing value.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return rdb.Set(ctx, key, value, ttl).Err()
}

// SetNX writes key only when it is absent and reports whether the write
// happened. The idempotency middleware uses it as a request lock.
func SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	return rdb.SetNX(ctx, key, value, ttl).Result()
}

// Del removes key. Deleting an absent key is not an error.
func Del(ctx context.Context, key string) error {
	return rdb.Del(ctx, key).Err()
}
