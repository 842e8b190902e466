// Package domain defines the core domain models for the tokenization vault.
// Each sensitive value is exchanged for an opaque token; the value itself is
// stored encrypted and can only be recovered through the token.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// VaultRecord represents a tokenized value at rest.
type VaultRecord struct {
	// Token is the opaque identifier handed back to the caller in place of the value.
	Token uuid.UUID
	// Ciphertext contains the encrypted value.
	Ciphertext []byte
	// IV is the random initialization vector used during encryption.
	IV []byte
	// CreatedAt is the UTC timestamp when this record was created.
	CreatedAt time.Time
}

// FieldResult is the per-field outcome of a detokenize request. Found is false
// when the token has no record in the vault; Value is empty in that case.
type FieldResult struct {
	Found bool
	Value string
}
