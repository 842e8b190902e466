// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/zasta/tokenvault/internal/vault/domain"
)

// MockVaultUseCase is a mock implementation of VaultUseCase for testing.
type MockVaultUseCase struct {
	mock.Mock
}

// Tokenize mocks the Tokenize method of VaultUseCase.
func (m *MockVaultUseCase) Tokenize(
	ctx context.Context,
	fields map[string]string,
) (map[string]string, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// Detokenize mocks the Detokenize method of VaultUseCase.
func (m *MockVaultUseCase) Detokenize(
	ctx context.Context,
	fields map[string]string,
) (map[string]vaultDomain.FieldResult, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]vaultDomain.FieldResult), args.Error(1)
}
