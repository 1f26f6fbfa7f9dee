package ports

import (
	"context"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

// UserSummary is the projection returned by the drivers-only user listing.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserService defines use-case operations on users.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	// ListDrivers returns id and name of every non-administrator.
	ListDrivers(ctx context.Context) ([]UserSummary, error)
	// Get is role-split: a non-admin caller always receives their own
	// profile; an admin fetches by id.
	Get(ctx context.Context, caller *domain.User, id string) (*domain.User, error)
	Update(ctx context.Context, role domain.Role, id string, patch Patch) (*domain.User, error)
	// Delete removes the user and cascades to its driver record, if any.
	Delete(ctx context.Context, id string) (*domain.User, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}
