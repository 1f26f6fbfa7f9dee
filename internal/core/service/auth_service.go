package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medcollect/pickup-api/internal/core/domain"
	"github.com/medcollect/pickup-api/internal/core/ports"
)

// AuthService implements registration, credential checks, and the revocable
// token lifecycle. Issued tokens carry no expiry: the user's persisted token
// list decides whether a session is still alive.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, jwtSecret string, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, log: log}
}

func (s *AuthService) Register(ctx context.Context, input ports.CreateUserInput) (*domain.User, string, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), domain.PasswordHashCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:          input.Name,
		CPF:           input.CPF,
		Birthday:      input.Birthday,
		Phone:         input.Phone,
		CNH:           input.CNH,
		Address:       input.Address,
		Email:         email,
		PasswordHash:  string(hash),
		Administrator: input.Administrator,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, created)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login")
	return user, token, nil
}

func (s *AuthService) Logout(ctx context.Context, user *domain.User, token string) error {
	user.RemoveToken(token)
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

func (s *AuthService) LogoutAll(ctx context.Context, user *domain.User) error {
	user.Tokens = nil
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

// issueToken signs a token for the user, appends it to the active list, and
// persists the user record immediately.
func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"iat":     time.Now().Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	user.Tokens = append(user.Tokens, token)
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return token, nil
}
