// Package usecase implements business logic orchestration for authentication.
package usecase

import (
	"context"

	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
)

// ServiceRepository defines the interface for ServiceIdentity persistence operations.
type ServiceRepository interface {
	Create(ctx context.Context, identity *authDomain.ServiceIdentity) error
	GetByID(ctx context.Context, serviceID string) (*authDomain.ServiceIdentity, error)
}

// AuthUseCase defines the interface for authentication business logic.
type AuthUseCase interface {
	// Authenticate verifies a service's secret and issues a bearer credential.
	// Unknown service and wrong secret both yield domain.ErrInvalidCredentials
	// so callers cannot probe for registered service IDs.
	Authenticate(ctx context.Context, serviceID, secret string) (*authDomain.Credential, error)

	// CreateService registers a new service with a generated secret.
	CreateService(ctx context.Context, input *authDomain.CreateServiceInput) (*authDomain.CreateServiceOutput, error)
}
