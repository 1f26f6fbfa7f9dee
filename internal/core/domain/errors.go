package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record with the given identifier does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when an authenticated caller lacks the rights for a resource.
	ErrForbidden = errors.New("access forbidden")
	// ErrUnauthorized covers missing, malformed, or revoked session tokens.
	ErrUnauthorized = errors.New("please authenticate")
	// ErrInvalidCredentials is deliberately generic: it never reveals whether
	// the email or the password was wrong.
	ErrInvalidCredentials = errors.New("unable to login")
	// ErrValidation covers malformed input, disallowed fields, and constraint violations.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate marks a unique-constraint collision (email, CPF, CNH number).
	ErrDuplicate = fmt.Errorf("%w: duplicate value", ErrValidation)
	// ErrUpdateNotPermitted marks an update touching fields outside the caller's allow-list.
	ErrUpdateNotPermitted = fmt.Errorf("%w: update not permitted", ErrValidation)
)
