package ports

import (
	"context"
	"time"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

// DriverUserRef is the owning user resolved to id and name.
type DriverUserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DriverView is a driver with its user reference resolved. Region is nil in
// user-only projections and omitted from the payload.
type DriverView struct {
	ID        string         `json:"id"`
	User      DriverUserRef  `json:"user"`
	Region    *domain.Region `json:"region,omitempty"`
	CreatedAt time.Time      `json:"createdAt,omitzero"`
	UpdatedAt time.Time      `json:"updatedAt,omitzero"`
}

// CreateDriverInput carries the data for creating a driver record.
type CreateDriverInput struct {
	UserID string
	Region domain.Region
}

// DriverService defines use-case operations on drivers.
type DriverService interface {
	List(ctx context.Context, userOnly bool) ([]DriverView, error)
	Get(ctx context.Context, id string) (*DriverView, error)
	// GetByUser resolves a driver through its owning user: admins pass any
	// user id, non-admins always get their own record.
	GetByUser(ctx context.Context, caller *domain.User, userID string) (*DriverView, error)
	Create(ctx context.Context, input CreateDriverInput) (*domain.Driver, error)
	Update(ctx context.Context, id string, patch Patch) (*domain.Driver, error)
	Delete(ctx context.Context, id string) (*domain.Driver, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}
