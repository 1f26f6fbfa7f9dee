package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const photoTTL = time.Hour

// PhotoCache is a TTL'd binary cache for normalized pickup photos.
// Key format: photo:<pickup_id>
type PhotoCache struct {
	client *redis.Client
}

// NewPhotoCache creates a PhotoCache wrapping the given Redis client.
func NewPhotoCache(client *redis.Client) *PhotoCache {
	return &PhotoCache{client: client}
}

// Get returns the cached photo, or nil on a miss.
func (c *PhotoCache) Get(ctx context.Context, pickupID string) ([]byte, error) {
	photo, err := c.client.Get(ctx, c.key(pickupID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("photo cache get: %w", err)
	}
	return photo, nil
}

// Set stores the photo, replacing any cached copy (expires after photoTTL).
func (c *PhotoCache) Set(ctx context.Context, pickupID string, photo []byte) error {
	return c.client.Set(ctx, c.key(pickupID), photo, photoTTL).Err()
}

// Invalidate drops the cached copy.
func (c *PhotoCache) Invalidate(ctx context.Context, pickupID string) error {
	return c.client.Del(ctx, c.key(pickupID)).Err()
}

func (c *PhotoCache) key(pickupID string) string {
	return "photo:" + pickupID
}
