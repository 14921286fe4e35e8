package models

import (
	"errors"
)

// Domain failure classes. Services wrap these with context via fmt.Errorf
// and the HTTP layer maps them to status codes with errors.Is.
var (
	// ErrValidation covers malformed or out-of-range input, rejected
	// before any state change.
	ErrValidation = errors.New("validation failed")

	// ErrPolicyViolation covers weekly placement limits. User-correctable.
	ErrPolicyViolation = errors.New("placement policy violation")

	// ErrInvalidCredentials deliberately does not distinguish a missing
	// account from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrBetNotFound        = errors.New("bet not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInviteCodeNotFound = errors.New("invite code not found")

	// ErrForbidden is returned when the caller lacks rights over the
	// target entity (wrong owner, non-admin on an admin operation).
	ErrForbidden = errors.New("forbidden")

	// Conflict class: lost check-then-act races surfaced by conditional
	// writes at the storage layer.
	ErrBetAlreadyResolved = errors.New("bet already resolved")
	ErrBetNotDeletable    = errors.New("only pending bets can be deleted")
	ErrInviteCodeUsed     = errors.New("invite code invalid or already used")
	ErrInviteCodeExists   = errors.New("invite code already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)
