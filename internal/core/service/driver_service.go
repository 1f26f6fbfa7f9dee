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

// DriverService implements driver CRUD. User names are resolved on read;
// missing users simply leave the name blank (lookup-on-read, no FK).
type DriverService struct {
	drivers ports.DriverRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewDriverService(drivers ports.DriverRepository, users ports.UserRepository, log zerolog.Logger) *DriverService {
	return &DriverService{drivers: drivers, users: users, log: log}
}

func (s *DriverService) List(ctx context.Context, userOnly bool) ([]ports.DriverView, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ports.DriverView, 0, len(drivers))
	for _, d := range drivers {
		view := s.view(ctx, d)
		if userOnly {
			view.Region = nil
			view.CreatedAt = time.Time{}
			view.UpdatedAt = time.Time{}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *DriverService) Get(ctx context.Context, id string) (*ports.DriverView, error) {
	driver, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.view(ctx, driver)
	return &view, nil
}

func (s *DriverService) GetByUser(ctx context.Context, caller *domain.User, userID string) (*ports.DriverView, error) {
	if !caller.Administrator {
		userID = caller.ID
	}

	driver, err := s.drivers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := s.view(ctx, driver)
	return &view, nil
}

func (s *DriverService) Create(ctx context.Context, input ports.CreateDriverInput) (*domain.Driver, error) {
	now := time.Now().UTC()
	driver := &domain.Driver{
		UserID:    input.UserID,
		Region:    input.Region,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.drivers.Create(ctx, driver)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("driver_id", created.ID).Str("user_id", created.UserID).Msg("driver created")
	return created, nil
}

func (s *DriverService) Update(ctx context.Context, id string, patch ports.Patch) (*domain.Driver, error) {
	// Admin-only route; only the region is mutable at all.
	if err := domain.CheckUpdateAllowed(domain.EntityDriver, domain.RoleAdmin, patch.Fields()); err != nil {
		return nil, err
	}

	driver, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, ok := patch["region"]; ok {
		if err := json.Unmarshal(raw, &driver.Region); err != nil {
			return nil, fmt.Errorf("%w: invalid value for %q", domain.ErrValidation, "region")
		}
	}
	driver.UpdatedAt = time.Now().UTC()

	if err := s.drivers.Update(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

func (s *DriverService) Delete(ctx context.Context, id string) (*domain.Driver, error) {
	driver, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.drivers.Delete(ctx, id); err != nil {
		return nil, err
	}
	return driver, nil
}

func (s *DriverService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.drivers.DeleteMany(ctx, ids)
}

func (s *DriverService) view(ctx context.Context, driver *domain.Driver) ports.DriverView {
	region := driver.Region
	view := ports.DriverView{
		ID:        driver.ID,
		User:      ports.DriverUserRef{ID: driver.UserID},
		Region:    &region,
		CreatedAt: driver.CreatedAt,
		UpdatedAt: driver.UpdatedAt,
	}

	user, err := s.users.FindByID(ctx, driver.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Str("driver_id", driver.ID).Msg("resolve driver user")
		}
		return view
	}
	view.User.Name = user.Name
	return view
}
