package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/medcollect/pickup-api/internal/core/domain"
)

// validate is shared by all services for field-level checks.
var validate = validator.New()

// normalizeEmail lowercases and trims the address, then checks its format.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	return email, nil
}
