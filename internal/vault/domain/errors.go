package domain

import (
	"github.com/zasta/tokenvault/internal/errors"
)

// Vault-specific error definitions.
var (
	// ErrRecordNotFound indicates no vault record exists for the given token.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "vault record not found")

	// ErrDecryptionFailed indicates a stored ciphertext could not be decrypted.
	// Deliberately not wrapped in a client-facing sentinel; callers surface it
	// as an internal error.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidMasterKey indicates the configured master key is missing or malformed.
	ErrInvalidMasterKey = errors.New("master key must be 32 bytes of hex")
)
