package ports

import (
	"context"
	"time"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

// PickupClinicRef is the referenced clinic resolved to id and name.
type PickupClinicRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// PickupDriverRef is the assigned driver resolved through to its user's name.
type PickupDriverRef struct {
	ID       string `json:"id"`
	UserID   string `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
}

// PickupView is a pickup with its clinic and driver references resolved.
// The photo never appears here; it has its own endpoints.
type PickupView struct {
	ID        string          `json:"id"`
	Clinic    PickupClinicRef `json:"clinic"`
	Driver    PickupDriverRef `json:"driver"`
	Date      time.Time       `json:"date"`
	Note      string          `json:"note,omitempty"`
	Done      bool            `json:"done"`
	CreatedAt time.Time       `json:"createdAt,omitzero"`
	UpdatedAt time.Time       `json:"updatedAt,omitzero"`
}

// CreatePickupInput carries the data for scheduling a pickup.
type CreatePickupInput struct {
	ClinicID string
	DriverID string
	Date     time.Time
	Note     string
}

// PickupService defines use-case operations on pickups.
type PickupService interface {
	List(ctx context.Context) ([]PickupView, error)
	// ListForDriver returns only pickups assigned to the caller's driver
	// record; a caller with no driver record gets an empty list.
	ListForDriver(ctx context.Context, caller *domain.User) ([]PickupView, error)
	// Get enforces assignment for non-admins: a pickup whose driver does not
	// resolve to the caller yields ErrForbidden.
	Get(ctx context.Context, caller *domain.User, id string) (*PickupView, error)
	Create(ctx context.Context, input CreatePickupInput) (*domain.Pickup, error)
	Update(ctx context.Context, role domain.Role, id string, patch Patch) (*domain.Pickup, error)
	Delete(ctx context.Context, id string) (*domain.Pickup, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}
