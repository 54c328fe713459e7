package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCacheField reads one field of a cached hash and unmarshals it into dest
func GetCacheField(ctx context.Context, rdb redis.Cmdable, key, field string, dest any) (bool, error) {
	val, err := rdb.HGet(ctx, key, field).Result()
	if err == redis.Nil {
		return false, nil // Field or key does not exist
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCacheField stores value under field of hash key and refreshes the hash TTL.
// Deleting key drops every field at once.
func SetCacheField(ctx context.Context, rdb redis.Cmdable, key, field string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	pipe := rdb.TxPipeline()
	pipe.HSet(ctx, key, field, b)
	pipe.Expire(ctx, key, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb redis.Cmdable, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}
