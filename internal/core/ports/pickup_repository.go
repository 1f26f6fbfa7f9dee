package ports

import (
	"context"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

// PickupRepository defines persistence operations for pickups. The photo
// lives on the pickup document but is excluded from the default projection;
// it is only reachable through the dedicated photo methods.
type PickupRepository interface {
	Create(ctx context.Context, pickup *domain.Pickup) (*domain.Pickup, error)
	FindByID(ctx context.Context, id string) (*domain.Pickup, error)
	// List returns pickups, optionally narrowed to one driver. An empty
	// driverID means no filter.
	List(ctx context.Context, driverID string) ([]*domain.Pickup, error)
	Update(ctx context.Context, pickup *domain.Pickup) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)

	GetPhoto(ctx context.Context, id string) ([]byte, error)
	SetPhoto(ctx context.Context, id string, photo []byte) error
	ClearPhoto(ctx context.Context, id string) error
}
