package domain

import (
	"slices"
	"time"
)

// ServiceIdentity represents a registered service that may authenticate
// against the vault.
type ServiceIdentity struct {
	// ID is the caller-chosen service identifier.
	ID string
	// HashedSecret is the Argon2id hash of the service secret (never plaintext).
	HashedSecret string
	// Role determines which vault operations the service may call.
	Role Role
	// CreatedAt is the UTC timestamp when the service was registered.
	CreatedAt time.Time
}

// Principal is the authenticated caller attached to a request after
// credential verification.
type Principal struct {
	ServiceID string
	Role      Role
}

// HasAnyRole reports whether the principal's role is in the allowed set.
func (p *Principal) HasAnyRole(allowed ...Role) bool {
	return slices.Contains(allowed, p.Role)
}

// Credential is a signed bearer credential issued after successful
// authentication.
type Credential struct {
	// Token is the signed credential string handed to the caller.
	Token string
	// ExpiresAt is the UTC timestamp after which the credential is rejected.
	ExpiresAt time.Time
}

// CreateServiceInput contains the parameters for registering a new service.
// The secret is generated server-side and cannot be chosen by the caller.
type CreateServiceInput struct {
	ID   string
	Role Role
}

// CreateServiceOutput contains the result of registering a service.
// SECURITY: PlainSecret is only returned once and must be securely transmitted
// to the service. It is never retrievable again.
type CreateServiceOutput struct {
	ID          string
	Role        Role
	PlainSecret string
}
