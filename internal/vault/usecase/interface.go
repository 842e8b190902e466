// Package usecase implements business logic orchestration for the tokenization
// vault. It coordinates the cipher, token generator, and repository to exchange
// sensitive values for opaque tokens and back.
package usecase

import (
	"context"

	"github.com/google/uuid"

	vaultDomain "github.com/zasta/tokenvault/internal/vault/domain"
)

// VaultRepository defines the interface for VaultRecord persistence operations.
type VaultRepository interface {
	Create(ctx context.Context, record *vaultDomain.VaultRecord) error
	GetBatch(ctx context.Context, tokens []uuid.UUID) ([]*vaultDomain.VaultRecord, error)
}

// VaultUseCase defines the interface for tokenization business logic.
type VaultUseCase interface {
	// Tokenize exchanges each field value for a freshly generated token and
	// stores the encrypted values. All inserts happen in one transaction; a
	// failure on any field leaves no records behind.
	Tokenize(ctx context.Context, fields map[string]string) (map[string]string, error)

	// Detokenize resolves each field's token back to its original value.
	// Unknown or malformed tokens yield a FieldResult with Found set to false
	// rather than an error.
	Detokenize(ctx context.Context, fields map[string]string) (map[string]vaultDomain.FieldResult, error)
}
