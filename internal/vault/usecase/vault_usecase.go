package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/zasta/tokenvault/internal/database"
	vaultDomain "github.com/zasta/tokenvault/internal/vault/domain"
	vaultService "github.com/zasta/tokenvault/internal/vault/service"
)

// vaultUseCase implements the VaultUseCase interface.
type vaultUseCase struct {
	txManager   database.TxManager
	vaultRepo   VaultRepository
	cipher      vaultService.Cipher
	tokenGen    vaultService.TokenGenerator
	parallelism int
}

// NewVaultUseCase creates a new vault use case instance with the provided
// dependencies. parallelism bounds concurrent per-field encryptions; values
// below 1 disable the bound.
func NewVaultUseCase(
	txManager database.TxManager,
	vaultRepo VaultRepository,
	cipher vaultService.Cipher,
	tokenGen vaultService.TokenGenerator,
	parallelism int,
) VaultUseCase {
	return &vaultUseCase{
		txManager:   txManager,
		vaultRepo:   vaultRepo,
		cipher:      cipher,
		tokenGen:    tokenGen,
		parallelism: parallelism,
	}
}

// Tokenize exchanges each field value for a token and stores the encrypted values.
func (v *vaultUseCase) Tokenize(
	ctx context.Context,
	fields map[string]string,
) (map[string]string, error) {
	records := make(map[string]*vaultDomain.VaultRecord, len(fields))

	// Encrypt fields concurrently; each field gets its own IV and token.
	g, gCtx := errgroup.WithContext(ctx)
	if v.parallelism > 0 {
		g.SetLimit(v.parallelism)
	}

	for name, value := range fields {
		record := &vaultDomain.VaultRecord{CreatedAt: time.Now().UTC()}
		records[name] = record

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			token, err := v.tokenGen.Generate()
			if err != nil {
				return err
			}
			record.Token, err = uuid.Parse(token)
			if err != nil {
				return err
			}

			record.Ciphertext, record.IV, err = v.cipher.Encrypt([]byte(value))
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Persist all records in one transaction so a failed insert leaves nothing behind.
	err := v.txManager.WithTx(ctx, func(txCtx context.Context) error {
		for _, record := range records {
			if err := v.vaultRepo.Create(txCtx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(records))
	for name, record := range records {
		result[name] = record.Token.String()
	}
	return result, nil
}

// Detokenize resolves each field's token back to its original value.
func (v *vaultUseCase) Detokenize(
	ctx context.Context,
	fields map[string]string,
) (map[string]vaultDomain.FieldResult, error) {
	// Collect the distinct well-formed tokens; malformed ones can never match
	// a record and resolve to not-found without touching storage.
	parsed := make(map[string]uuid.UUID, len(fields))
	for _, raw := range fields {
		if v.tokenGen.Validate(raw) != nil {
			continue
		}
		if token, err := uuid.Parse(raw); err == nil {
			parsed[raw] = token
		}
	}

	tokenSet := make(map[uuid.UUID]struct{}, len(parsed))
	for _, token := range parsed {
		tokenSet[token] = struct{}{}
	}

	values := make(map[uuid.UUID]string, len(tokenSet))
	if len(tokenSet) > 0 {
		tokens := make([]uuid.UUID, 0, len(tokenSet))
		for token := range tokenSet {
			tokens = append(tokens, token)
		}

		records, err := v.vaultRepo.GetBatch(ctx, tokens)
		if err != nil {
			return nil, err
		}

		for _, record := range records {
			plaintext, err := v.cipher.Decrypt(record.Ciphertext, record.IV)
			if err != nil {
				return nil, err
			}
			values[record.Token] = string(plaintext)
			vaultDomain.Zero(plaintext)
		}
	}

	results := make(map[string]vaultDomain.FieldResult, len(fields))
	for name, raw := range fields {
		token, ok := parsed[raw]
		if !ok {
			results[name] = vaultDomain.FieldResult{}
			continue
		}
		if value, ok := values[token]; ok {
			results[name] = vaultDomain.FieldResult{Found: true, Value: value}
		} else {
			results[name] = vaultDomain.FieldResult{}
		}
	}
	return results, nil
}
