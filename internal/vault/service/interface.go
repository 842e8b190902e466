// Package service implements the cryptographic and token generation services
// backing the vault.
package service

import "context"

// Cipher encrypts and decrypts vault values.
type Cipher interface {
	// Encrypt encrypts plaintext and returns the ciphertext together with the
	// randomly generated IV used for this operation.
	Encrypt(plaintext []byte) (ciphertext, iv []byte, err error)

	// Decrypt decrypts ciphertext using the provided IV.
	Decrypt(ciphertext, iv []byte) ([]byte, error)
}

// TokenGenerator produces opaque tokens for vault records.
type TokenGenerator interface {
	// Generate creates a new unique token.
	Generate() (string, error)

	// Validate checks whether a token has the expected format.
	Validate(token string) error
}

// MasterKeyLoader resolves the vault master key from configuration, optionally
// unwrapping it through an external key management service.
type MasterKeyLoader interface {
	// Load returns the 32-byte master key. The caller owns the returned slice
	// and should zero it when no longer needed.
	Load(ctx context.Context) ([]byte, error)
}
