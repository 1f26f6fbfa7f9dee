package ports

import (
	"context"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

// CreateClinicInput carries the data for creating a clinic.
type CreateClinicInput struct {
	CNPJ    int64
	Name    string
	Address domain.Address
	Phone   int64
	Contact string
}

// ClinicService defines use-case operations on clinics.
type ClinicService interface {
	List(ctx context.Context) ([]*domain.Clinic, error)
	Get(ctx context.Context, id string) (*domain.Clinic, error)
	Create(ctx context.Context, input CreateClinicInput) (*domain.Clinic, error)
	Update(ctx context.Context, role domain.Role, id string, patch Patch) (*domain.Clinic, error)
	Delete(ctx context.Context, id string) (*domain.Clinic, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}
