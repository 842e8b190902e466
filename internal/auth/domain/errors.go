package domain

import (
	"github.com/zasta/tokenvault/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrServiceNotFound indicates a service with the specified ID was not found.
	ErrServiceNotFound = errors.Wrap(errors.ErrNotFound, "service not found")

	// ErrInvalidCredentials covers every authentication failure: unknown
	// service, wrong secret, bad signature, tampering, expiry. Callers must
	// not be able to tell these apart.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidRole indicates an unknown role name.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")
)
