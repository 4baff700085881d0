package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Every helper treats a nil client as a disabled cache.

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// DeleteCachePrefix deletes every key starting with prefix
func DeleteCachePrefix(ctx context.Context, rdb *redis.Client, prefix string) error {
	if rdb == nil {
		return nil
	}
	iter := rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return DeleteCache(ctx, rdb, keys...)
}

// CacheVersion returns the generation counter stored at key, zero when unset
func CacheVersion(ctx context.Context, rdb *redis.Client, key string) (int64, error) {
	if rdb == nil {
		return 0, nil
	}
	v, err := rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

// BumpCacheVersion advances the generation counter at key so entries written under an
// older generation are never read again
func BumpCacheVersion(ctx context.Context, rdb *redis.Client, key string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Incr(ctx, key).Err()
}

// BlacklistToken marks a token id as revoked until the token would expire anyway
func BlacklistToken(ctx context.Context, rdb *redis.Client, jti string, expiresAt time.Time) error {
	if rdb == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil // Already expired, nothing to revoke
	}
	return rdb.Set(ctx, blacklistKey(jti), "1", ttl).Err()
}

// IsTokenBlacklisted reports whether a token id was revoked
func IsTokenBlacklisted(ctx context.Context, rdb *redis.Client, jti string) (bool, error) {
	if rdb == nil || jti == "" {
		return false, nil
	}
	n, err := rdb.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func blacklistKey(jti string) string {
	return "token:blacklist:" + jti
}
