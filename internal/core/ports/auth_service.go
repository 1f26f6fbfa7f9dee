package ports

import (
	"context"
	"time"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

// CreateUserInput carries all data needed to register a user.
type CreateUserInput struct {
	Name          string
	CPF           int64
	Birthday      time.Time
	Phone         int64
	CNH           *domain.License
	Address       domain.Address
	Email         string
	Password      string
	Administrator bool
}

// AuthService implements the credential and session lifecycle. Tokens are
// revocable: the user's persisted token list is the authoritative session
// state, not the token signature alone.
type AuthService interface {
	// Register stores a new user and issues its first session token.
	Register(ctx context.Context, input CreateUserInput) (*domain.User, string, error)
	// Login verifies credentials and issues a fresh token. Failures are
	// generic: the caller cannot tell a wrong email from a wrong password.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Logout revokes exactly the presented token; other sessions stay valid.
	Logout(ctx context.Context, user *domain.User, token string) error
	// LogoutAll revokes every active token for the user.
	LogoutAll(ctx context.Context, user *domain.User) error
}
