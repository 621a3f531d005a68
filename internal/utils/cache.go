package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// TaskListTTL is how long a cached dashboard listing stays valid
const TaskListTTL = 60 * time.Second

func taskListPrefix(userID uint) string {
	return "tasks:user:" + strconv.FormatUint(uint64(userID), 10)
}

// TaskListVersionKey holds the generation counter of a user's task list
func TaskListVersionKey(userID uint) string {
	return taskListPrefix(userID) + ":v"
}

// TaskListKey is the cache key of a user's ordered task list at a given generation.
// Listings written under an older generation are never read again.
func TaskListKey(userID uint, version int64) string {
	return taskListPrefix(userID) + ":" + strconv.FormatInt(version, 10)
}

// TaskListVersion returns the current generation of a user's task list, 0 if never bumped
func TaskListVersion(ctx context.Context, rdb *redis.Client, userID uint) (int64, error) {
	if rdb == nil {
		return 0, nil // Caching disabled
	}
	v, err := rdb.Get(ctx, TaskListVersionKey(userID)).Int64() // Read counter
	if err == redis.Nil {
		return 0, nil // No mutation yet
	}
	return v, err
}

// InvalidateTaskList bumps the generation of a user's task list
func InvalidateTaskList(ctx context.Context, rdb *redis.Client, userID uint) error {
	if rdb == nil {
		return nil
	}
	return rdb.Incr(ctx, TaskListVersionKey(userID)).Err() // Orphan every older listing
}

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves like a permanent miss.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err // Corrupt entry
	}
	return true, nil
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
