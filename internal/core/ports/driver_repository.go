package ports

import (
	"context"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

// DriverRepository defines persistence operations for driver records.
type DriverRepository interface {
	Create(ctx context.Context, driver *domain.Driver) (*domain.Driver, error)
	FindByID(ctx context.Context, id string) (*domain.Driver, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Driver, error)
	List(ctx context.Context) ([]*domain.Driver, error)
	Update(ctx context.Context, driver *domain.Driver) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	// DeleteByUserIDs removes the driver records owned by the given users.
	// Used by the user-delete cascade.
	DeleteByUserIDs(ctx context.Context, userIDs []string) (int64, error)
}
