// Package common defines shared constants and sentinel errors used across
// client and server layers of AgencyDesk. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrStorage wraps any persistence failure that is not otherwise classified.
	ErrStorage = errors.New("storage failure")

	// Registration conflicts.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")

	// ErrInvalidCredentials is returned both for unknown usernames and for
	// wrong passwords so that callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")

	// ErrUserNotFound means the token was valid but its subject is gone.
	ErrUserNotFound = errors.New("user not found")

	// Business record lookups.
	ErrClientNotFound  = errors.New("client not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrNoAttachment    = errors.New("invoice has no attachment")

	// Validation errors.
	ErrValidation   = errors.New("validation error")
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrorInternal is used for failures that must not leak details.
	ErrorInternal = errors.New("internal error")
)
