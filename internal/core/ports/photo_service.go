package ports

import (
	"context"
	"io"
)

// PhotoService normalizes and stores pickup photos. Every accepted upload is
// re-encoded to the canonical form (PNG, fixed height, proportional width)
// before it reaches the store.
type PhotoService interface {
	// Upload validates the declared filename and size, normalizes the image,
	// and stores it on the pickup, replacing any prior photo. The stored
	// bytes are returned.
	Upload(ctx context.Context, pickupID, filename string, size int64, r io.Reader) ([]byte, error)
	Get(ctx context.Context, pickupID string) ([]byte, error)
	Delete(ctx context.Context, pickupID string) error
}
