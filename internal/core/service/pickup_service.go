package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

// PickupService implements pickup CRUD. Clinic and driver references are
// resolved on read; a reference that no longer resolves leaves its name
// blank rather than failing the whole read.
type PickupService struct {
	pickups ports.PickupRepository
	drivers ports.DriverRepository
	clinics ports.ClinicRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewPickupService(
	pickups ports.PickupRepository,
	drivers ports.DriverRepository,
	clinics ports.ClinicRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *PickupService {
	return &PickupService{pickups: pickups, drivers: drivers, clinics: clinics, users: users, log: log}
}

func (s *PickupService) List(ctx context.Context) ([]ports.PickupView, error) {
	pickups, err := s.pickups.List(ctx, "")
	if err != nil {
		return nil, err
	}
	return s.views(ctx, pickups), nil
}

func (s *PickupService) ListForDriver(ctx context.Context, caller *domain.User) ([]ports.PickupView, error) {
	driver, err := s.drivers.FindByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []ports.PickupView{}, nil
		}
		return nil, err
	}

	pickups, err := s.pickups.List(ctx, driver.ID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, pickups), nil
}

func (s *PickupService) Get(ctx context.Context, caller *domain.User, id string) (*ports.PickupView, error) {
	pickup, err := s.pickups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := s.view(ctx, pickup, map[string]string{}, map[string]ports.PickupDriverRef{})
	if !caller.Administrator && view.Driver.UserID != caller.ID {
		return nil, domain.ErrForbidden
	}
	return &view, nil
}

func (s *PickupService) Create(ctx context.Context, input ports.CreatePickupInput) (*domain.Pickup, error) {
	if input.ClinicID == "" || input.DriverID == "" {
		return nil, fmt.Errorf("%w: clinic and driver are required", domain.ErrValidation)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	pickup := &domain.Pickup{
		ClinicID:  input.ClinicID,
		DriverID:  input.DriverID,
		Date:      input.Date,
		Note:      input.Note,
		Done:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.pickups.Create(ctx, pickup)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("pickup_id", created.ID).Str("clinic_id", created.ClinicID).Str("driver_id", created.DriverID).Msg("pickup created")
	return created, nil
}

func (s *PickupService) Update(ctx context.Context, role domain.Role, id string, patch ports.Patch) (*domain.Pickup, error) {
	if err := domain.CheckUpdateAllowed(domain.EntityPickup, role, patch.Fields()); err != nil {
		return nil, err
	}

	pickup, err := s.pickups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPickupPatch(pickup, patch); err != nil {
		return nil, err
	}
	pickup.UpdatedAt = time.Now().UTC()

	if err := s.pickups.Update(ctx, pickup); err != nil {
		return nil, err
	}
	return pickup, nil
}

func (s *PickupService) Delete(ctx context.Context, id string) (*domain.Pickup, error) {
	pickup, err := s.pickups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.pickups.Delete(ctx, id); err != nil {
		return nil, err
	}
	return pickup, nil
}

func (s *PickupService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.pickups.DeleteMany(ctx, ids)
}

// views resolves references for a whole listing, memoizing lookups so a
// driver serving many clinics is resolved once.
func (s *PickupService) views(ctx context.Context, pickups []*domain.Pickup) []ports.PickupView {
	clinicNames := map[string]string{}
	driverRefs := map[string]ports.PickupDriverRef{}

	views := make([]ports.PickupView, 0, len(pickups))
	for _, p := range pickups {
		views = append(views, s.view(ctx, p, clinicNames, driverRefs))
	}
	return views
}

func (s *PickupService) view(ctx context.Context, p *domain.Pickup, clinicNames map[string]string, driverRefs map[string]ports.PickupDriverRef) ports.PickupView {
	view := ports.PickupView{
		ID:        p.ID,
		Clinic:    ports.PickupClinicRef{ID: p.ClinicID},
		Driver:    ports.PickupDriverRef{ID: p.DriverID},
		Date:      p.Date,
		Note:      p.Note,
		Done:      p.Done,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	if name, ok := clinicNames[p.ClinicID]; ok {
		view.Clinic.Name = name
	} else if clinic, err := s.clinics.FindByID(ctx, p.ClinicID); err == nil {
		clinicNames[p.ClinicID] = clinic.Name
		view.Clinic.Name = clinic.Name
	}

	if ref, ok := driverRefs[p.DriverID]; ok {
		view.Driver = ref
	} else if driver, err := s.drivers.FindByID(ctx, p.DriverID); err == nil {
		ref := ports.PickupDriverRef{ID: driver.ID, UserID: driver.UserID}
		if user, err := s.users.FindByID(ctx, driver.UserID); err == nil {
			ref.UserName = user.Name
		}
		driverRefs[p.DriverID] = ref
		view.Driver = ref
	}

	return view
}

func applyPickupPatch(pickup *domain.Pickup, patch ports.Patch) error {
	for name, raw := range patch {
		var err error
		switch name {
		case "clinic":
			err = json.Unmarshal(raw, &pickup.ClinicID)
		case "driver":
			err = json.Unmarshal(raw, &pickup.DriverID)
		case "note":
			err = json.Unmarshal(raw, &pickup.Note)
		case "date":
			err = json.Unmarshal(raw, &pickup.Date)
		case "done":
			err = json.Unmarshal(raw, &pickup.Done)
		default:
			return domain.ErrUpdateNotPermitted
		}
		if err != nil {
			return fmt.Errorf("%w: invalid value for %q", domain.ErrValidation, name)
		}
	}
	return nil
}
