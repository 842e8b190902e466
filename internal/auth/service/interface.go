// Package service provides authentication services: secret generation and
// hashing, and issuing/verifying signed bearer credentials.
package service

import (
	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
)

// SecretService handles service secret generation and verification.
type SecretService interface {
	// GenerateSecret creates a new random secret and its hash.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	// HashSecret hashes a plain text secret.
	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret performs a constant-time comparison between a plain secret
	// and its hash.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// CredentialService issues and verifies signed bearer credentials.
type CredentialService interface {
	// Issue creates a signed credential for the given service identity.
	Issue(serviceID string, role authDomain.Role) (*authDomain.Credential, error)

	// Verify validates a credential string and returns the principal it was
	// issued to. Every failure mode returns domain.ErrInvalidCredentials.
	Verify(token string) (*authDomain.Principal, error)
}
