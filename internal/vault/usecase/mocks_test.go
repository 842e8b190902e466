package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/zasta/tokenvault/internal/vault/domain"
)

// mockVaultRepository is a mock implementation of VaultRepository for testing.
type mockVaultRepository struct {
	mock.Mock
}

func (m *mockVaultRepository) Create(ctx context.Context, record *vaultDomain.VaultRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockVaultRepository) GetBatch(
	ctx context.Context,
	tokens []uuid.UUID,
) ([]*vaultDomain.VaultRecord, error) {
	args := m.Called(ctx, tokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.VaultRecord), args.Error(1)
}

// mockTxManager runs the callback without a real transaction.
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// mockTokenGenerator is a mock implementation of the TokenGenerator service for testing.
type mockTokenGenerator struct {
	mock.Mock
}

func (m *mockTokenGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *mockTokenGenerator) Validate(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

// mockCipher is a mock implementation of the Cipher service for testing.
type mockCipher struct {
	mock.Mock
}

func (m *mockCipher) Encrypt(plaintext []byte) ([]byte, []byte, error) {
	args := m.Called(plaintext)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).([]byte), args.Error(2)
}

func (m *mockCipher) Decrypt(ciphertext, iv []byte) ([]byte, error) {
	args := m.Called(ciphertext, iv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
