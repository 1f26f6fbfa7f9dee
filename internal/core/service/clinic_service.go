package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

// ClinicService implements clinic CRUD.
type ClinicService struct {
	clinics ports.ClinicRepository
	log     zerolog.Logger
}

func NewClinicService(clinics ports.ClinicRepository, log zerolog.Logger) *ClinicService {
	return &ClinicService{clinics: clinics, log: log}
}

func (s *ClinicService) List(ctx context.Context) ([]*domain.Clinic, error) {
	return s.clinics.List(ctx)
}

func (s *ClinicService) Get(ctx context.Context, id string) (*domain.Clinic, error) {
	return s.clinics.FindByID(ctx, id)
}

func (s *ClinicService) Create(ctx context.Context, input ports.CreateClinicInput) (*domain.Clinic, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	clinic := &domain.Clinic{
		CNPJ:      input.CNPJ,
		Name:      input.Name,
		Address:   input.Address,
		Phone:     input.Phone,
		Contact:   input.Contact,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.clinics.Create(ctx, clinic)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("clinic_id", created.ID).Str("name", created.Name).Msg("clinic created")
	return created, nil
}

func (s *ClinicService) Update(ctx context.Context, role domain.Role, id string, patch ports.Patch) (*domain.Clinic, error) {
	if err := domain.CheckUpdateAllowed(domain.EntityClinic, role, patch.Fields()); err != nil {
		return nil, err
	}

	clinic, err := s.clinics.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyClinicPatch(clinic, patch); err != nil {
		return nil, err
	}
	clinic.UpdatedAt = time.Now().UTC()

	if err := s.clinics.Update(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *ClinicService) Delete(ctx context.Context, id string) (*domain.Clinic, error) {
	clinic, err := s.clinics.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.clinics.Delete(ctx, id); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *ClinicService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.clinics.DeleteMany(ctx, ids)
}

func applyClinicPatch(clinic *domain.Clinic, patch ports.Patch) error {
	for name, raw := range patch {
		var err error
		switch name {
		case "name":
			err = json.Unmarshal(raw, &clinic.Name)
		case "cnpj":
			err = json.Unmarshal(raw, &clinic.CNPJ)
		case "phone":
			err = json.Unmarshal(raw, &clinic.Phone)
		case "contact":
			err = json.Unmarshal(raw, &clinic.Contact)
		case "address":
			err = json.Unmarshal(raw, &clinic.Address)
		default:
			return domain.ErrUpdateNotPermitted
		}
		if err != nil {
			return fmt.Errorf("%w: invalid value for %q", domain.ErrValidation, name)
		}
	}
	return nil
}
