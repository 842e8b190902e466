package usecase

import (
	"context"
	"time"

	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
	authService "github.com/zasta/tokenvault/internal/auth/service"
	apperrors "github.com/zasta/tokenvault/internal/errors"
	"github.com/zasta/tokenvault/internal/validation"
)

// authUseCase implements the AuthUseCase interface.
type authUseCase struct {
	serviceRepo       ServiceRepository
	secretService     authService.SecretService
	credentialService authService.CredentialService
}

// NewAuthUseCase creates a new auth use case instance with the provided dependencies.
func NewAuthUseCase(
	serviceRepo ServiceRepository,
	secretService authService.SecretService,
	credentialService authService.CredentialService,
) AuthUseCase {
	return &authUseCase{
		serviceRepo:       serviceRepo,
		secretService:     secretService,
		credentialService: credentialService,
	}
}

// Authenticate verifies a service's secret and issues a bearer credential.
func (a *authUseCase) Authenticate(
	ctx context.Context,
	serviceID, secret string,
) (*authDomain.Credential, error) {
	identity, err := a.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.secretService.CompareSecret(secret, identity.HashedSecret) {
		return nil, authDomain.ErrInvalidCredentials
	}

	return a.credentialService.Issue(identity.ID, identity.Role)
}

// CreateService registers a new service with a generated secret.
func (a *authUseCase) CreateService(
	ctx context.Context,
	input *authDomain.CreateServiceInput,
) (*authDomain.CreateServiceOutput, error) {
	if err := validation.NotBlank.Validate(input.ID); err != nil {
		return nil, validation.WrapValidationError(err)
	}
	if !input.Role.IsValid() {
		return nil, authDomain.ErrInvalidRole
	}

	plainSecret, hashedSecret, err := a.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	identity := &authDomain.ServiceIdentity{
		ID:           input.ID,
		HashedSecret: hashedSecret,
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.serviceRepo.Create(ctx, identity); err != nil {
		return nil, err
	}

	return &authDomain.CreateServiceOutput{
		ID:          identity.ID,
		Role:        identity.Role,
		PlainSecret: plainSecret,
	}, nil
}
