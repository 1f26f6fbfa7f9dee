package ports

import (
	"context"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

// ClinicRepository defines persistence operations for clinics.
type ClinicRepository interface {
	Create(ctx context.Context, clinic *domain.Clinic) (*domain.Clinic, error)
	FindByID(ctx context.Context, id string) (*domain.Clinic, error)
	List(ctx context.Context) ([]*domain.Clinic, error)
	Update(ctx context.Context, clinic *domain.Clinic) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}
