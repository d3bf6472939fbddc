package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the recoverable failure modes. Fatal configuration
// errors (missing or corrupt catalog / vendor database) are returned as
// plain wrapped errors since the process cannot continue past them.
var (
	// ErrNotFound is returned for an unknown controller or profile name.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState is returned when a binding write names a state
	// outside the enumerated set.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict is returned when a profile name collides with an
	// existing user or built-in profile.
	ErrConflict = errors.New("name conflict")
	// ErrBuiltin is returned on attempts to modify or delete a built-in
	// profile.
	ErrBuiltin = errors.New("built-in profile")
	// ErrMalformed is returned when a profile document fails structural
	// validation.
	ErrMalformed = errors.New("malformed profile")
)

// ValidationError reports every invariant a profile document violates.
type ValidationError struct {
	Name       string
	Violations []string
}

func (e *ValidationError) Error() string {
	name := e.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("profile %q is invalid: %s", name, strings.Join(e.Violations, "; "))
}

// Unwrap makes ValidationError match ErrMalformed with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrMalformed
}
