package ports

import (
	"context"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

// UserRepository defines persistence operations for users. The token list is
// part of the user document and travels with every Update.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns all users. With driversOnly set, only non-administrators
	// are returned, projected to id and name.
	List(ctx context.Context, driversOnly bool) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}
