// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
)

// MockAuthUseCase is a mock implementation of AuthUseCase for testing.
type MockAuthUseCase struct {
	mock.Mock
}

// Authenticate mocks the Authenticate method of AuthUseCase.
func (m *MockAuthUseCase) Authenticate(
	ctx context.Context,
	serviceID, secret string,
) (*authDomain.Credential, error) {
	args := m.Called(ctx, serviceID, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Credential), args.Error(1)
}

// CreateService mocks the CreateService method of AuthUseCase.
func (m *MockAuthUseCase) CreateService(
	ctx context.Context,
	input *authDomain.CreateServiceInput,
) (*authDomain.CreateServiceOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreateServiceOutput), args.Error(1)
}
