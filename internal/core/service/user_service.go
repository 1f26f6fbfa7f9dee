package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

// UserService implements user CRUD with the role-gated field policy and the
// user→driver delete cascade.
type UserService struct {
	users   ports.UserRepository
	drivers ports.DriverRepository
	log     zerolog.Logger
}

func NewUserService(users ports.UserRepository, drivers ports.DriverRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, drivers: drivers, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx, false)
}

func (s *UserService) ListDrivers(ctx context.Context) ([]ports.UserSummary, error) {
	users, err := s.users.List(ctx, true)
	if err != nil {
		return nil, err
	}
	summaries := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, ports.UserSummary{ID: u.ID, Name: u.Name})
	}
	return summaries, nil
}

// Get is role-split: non-admins always receive their own profile, admins
// fetch by id.
func (s *UserService) Get(ctx context.Context, caller *domain.User, id string) (*domain.User, error) {
	if !caller.Administrator {
		return caller, nil
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, role domain.Role, id string, patch ports.Patch) (*domain.User, error) {
	if err := domain.CheckUpdateAllowed(domain.EntityUser, role, patch.Fields()); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyUserPatch(user, patch); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user and its driver record, if any. The two writes are
// independent; a failure between them can orphan the driver record.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.drivers.DeleteByUserIDs(ctx, []string{id}); err != nil {
		return nil, fmt.Errorf("cascade driver delete: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		s.log.Warn().Str("user_id", id).Msg("driver record removed but user delete failed")
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("user deleted")
	return user, nil
}

func (s *UserService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if _, err := s.drivers.DeleteByUserIDs(ctx, ids); err != nil {
		return 0, fmt.Errorf("cascade driver delete: %w", err)
	}
	return s.users.DeleteMany(ctx, ids)
}

// applyUserPatch applies each submitted field verbatim. The field set has
// already passed the update policy; unmarshal failures and email/password
// rule violations reject the whole update.
func applyUserPatch(user *domain.User, patch ports.Patch) error {
	for name, raw := range patch {
		var err error
		switch name {
		case "name":
			err = json.Unmarshal(raw, &user.Name)
		case "cpf":
			err = json.Unmarshal(raw, &user.CPF)
		case "birthday":
			err = json.Unmarshal(raw, &user.Birthday)
		case "phone":
			err = json.Unmarshal(raw, &user.Phone)
		case "cnh":
			err = json.Unmarshal(raw, &user.CNH)
		case "address":
			err = json.Unmarshal(raw, &user.Address)
		case "email":
			var email string
			if err = json.Unmarshal(raw, &email); err == nil {
				user.Email, err = normalizeEmail(email)
			}
		case "password":
			var password string
			if err = json.Unmarshal(raw, &password); err == nil {
				if err = domain.ValidatePassword(password); err != nil {
					return err
				}
				var hash []byte
				if hash, err = bcrypt.GenerateFromPassword([]byte(password), domain.PasswordHashCost); err == nil {
					user.PasswordHash = string(hash)
				}
			}
		case "administrator":
			err = json.Unmarshal(raw, &user.Administrator)
		default:
			return domain.ErrUpdateNotPermitted
		}
		if err != nil {
			return fmt.Errorf("%w: invalid value for %q", domain.ErrValidation, name)
		}
	}
	return nil
}
