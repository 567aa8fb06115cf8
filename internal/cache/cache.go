package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrCacheMiss is returned when a key is not present.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the read-optimization layer in front of the store. It is never a
// source of truth: every ward write invalidates the affected keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// OccupancyKey is the cache key for a ward's occupancy snapshot.
func OccupancyKey(wardID uuid.UUID) string {
	return "ward:" + wardID.String() + ":occupancy"
}
