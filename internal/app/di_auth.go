package app

import (
	"fmt"

	authHTTP "github.com/zasta/tokenvault/internal/auth/http"
	authRepository "github.com/zasta/tokenvault/internal/auth/repository"
	authService "github.com/zasta/tokenvault/internal/auth/service"
	authUseCase "github.com/zasta/tokenvault/internal/auth/usecase"
	"github.com/zasta/tokenvault/internal/database"
)

// SecretService returns the secret service for service registration and
// secret verification.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// CredentialService returns the credential service that signs and verifies
// bearer credentials.
func (c *Container) CredentialService() (authService.CredentialService, error) {
	var err error
	c.credentialServiceInit.Do(func() {
		c.credentialService, err = c.initCredentialService()
		if err != nil {
			c.initErrors["credentialService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialService"]; exists {
		return nil, storedErr
	}
	return c.credentialService, nil
}

// ServiceRepository returns the service repository based on database driver.
func (c *Container) ServiceRepository() (authUseCase.ServiceRepository, error) {
	var err error
	c.serviceRepoInit.Do(func() {
		c.serviceRepo, err = c.initServiceRepository()
		if err != nil {
			c.initErrors["serviceRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["serviceRepo"]; exists {
		return nil, storedErr
	}
	return c.serviceRepo, nil
}

// AuthUseCase returns the auth use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// AuthHandler returns the HTTP handler for credential issuance.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		c.authHandler, err = c.initAuthHandler()
		if err != nil {
			c.initErrors["authHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// initCredentialService creates the credential service from configuration.
func (c *Container) initCredentialService() (authService.CredentialService, error) {
	credentialService, err := authService.NewCredentialService(
		c.config.CredentialSigningSecret,
		c.config.CredentialExpiration,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential service: %w", err)
	}
	return credentialService, nil
}

// initServiceRepository creates the service repository based on the database driver.
func (c *Container) initServiceRepository() (authUseCase.ServiceRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for service repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return authRepository.NewPostgreSQLServiceRepository(db), nil
	case database.DriverMySQL:
		return authRepository.NewMySQLServiceRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuthUseCase creates the auth use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	serviceRepo, err := c.ServiceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get service repository for auth use case: %w", err)
	}

	credentialService, err := c.CredentialService()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential service for auth use case: %w", err)
	}

	secretService := c.SecretService()

	baseUseCase := authUseCase.NewAuthUseCase(serviceRepo, secretService, credentialService)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuthHandler creates the auth HTTP handler with all its dependencies.
func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	useCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for auth handler: %w", err)
	}

	logger := c.Logger()

	return authHTTP.NewAuthHandler(useCase, logger), nil
}
