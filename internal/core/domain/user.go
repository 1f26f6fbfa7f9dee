package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the caller's effective role, derived from the administrator flag.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

// PasswordHashCost is the bcrypt cost factor, fixed at account creation.
const PasswordHashCost = 8

// License holds the driving-license data carried by drivers.
type License struct {
	Number       int64     `json:"number,omitempty" bson:"number,omitempty"`
	ExpiringDate time.Time `json:"expiringDate,omitempty" bson:"expiring_date,omitempty"`
	Category     []string  `json:"category,omitempty" bson:"category,omitempty"`
}

// Address is shared by users and clinics.
type Address struct {
	ZipCode      int64  `json:"zipCode,omitempty" bson:"zip_code,omitempty"`
	Street       string `json:"street,omitempty" bson:"street,omitempty"`
	Number       int    `json:"number,omitempty" bson:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty" bson:"neighborhood,omitempty"`
	City         string `json:"city,omitempty" bson:"city,omitempty"`
	State        string `json:"state,omitempty" bson:"state,omitempty"`
}

// User is an identity record. The password hash and the active token list are
// session state and must never reach a serialized response.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CPF           int64     `json:"cpf,omitempty"`
	Birthday      time.Time `json:"birthday,omitempty"`
	Phone         int64     `json:"phone,omitempty"`
	CNH           *License  `json:"cnh,omitempty"`
	Address       Address   `json:"address"`
	Email         string    `json:"email,omitempty"`
	PasswordHash  string    `json:"-"`
	Administrator bool      `json:"administrator"`
	Tokens        []string  `json:"-"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

// Role maps the administrator flag to the effective role.
func (u *User) Role() Role {
	if u.Administrator {
		return RoleAdmin
	}
	return RoleDriver
}

// HasToken reports whether the given token is still in the user's active list.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// RemoveToken drops exactly the matching token, leaving other sessions valid.
func (u *User) RemoveToken(token string) {
	kept := make([]string, 0, len(u.Tokens))
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
}

// ValidatePassword enforces the plaintext password rules: minimum length 7
// and the literal substring "senha" is banned, case-insensitively.
func ValidatePassword(password string) error {
	if len(password) < 7 {
		return fmt.Errorf("%w: password must be at least 7 characters", ErrValidation)
	}
	if strings.Contains(strings.ToLower(password), "senha") {
		return fmt.Errorf("%w: password must not contain %q", ErrValidation, "senha")
	}
	return nil
}
