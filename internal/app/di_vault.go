package app

import (
	"context"
	"fmt"

	"github.com/zasta/tokenvault/internal/database"
	vaultHTTP "github.com/zasta/tokenvault/internal/vault/http"
	vaultRepository "github.com/zasta/tokenvault/internal/vault/repository"
	vaultService "github.com/zasta/tokenvault/internal/vault/service"
	vaultUseCase "github.com/zasta/tokenvault/internal/vault/usecase"
)

// MasterKey returns the vault master key, loading it from configuration and
// unwrapping via KMS when a key URI is configured. Fails fast on an invalid key.
func (c *Container) MasterKey() ([]byte, error) {
	var err error
	c.masterKeyInit.Do(func() {
		c.masterKey, err = c.initMasterKey()
		if err != nil {
			c.initErrors["masterKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return nil, storedErr
	}
	return c.masterKey, nil
}

// Cipher returns the cipher used to encrypt vault records.
func (c *Container) Cipher() (vaultService.Cipher, error) {
	var err error
	c.cipherInit.Do(func() {
		c.cipher, err = c.initCipher()
		if err != nil {
			c.initErrors["cipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cipher"]; exists {
		return nil, storedErr
	}
	return c.cipher, nil
}

// TokenGenerator returns the token generator service.
func (c *Container) TokenGenerator() vaultService.TokenGenerator {
	c.tokenGeneratorInit.Do(func() {
		c.tokenGenerator = vaultService.NewUUIDTokenGenerator()
	})
	return c.tokenGenerator
}

// VaultRepository returns the vault record repository based on database driver.
func (c *Container) VaultRepository() (vaultUseCase.VaultRepository, error) {
	var err error
	c.vaultRepoInit.Do(func() {
		c.vaultRepo, err = c.initVaultRepository()
		if err != nil {
			c.initErrors["vaultRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultRepo"]; exists {
		return nil, storedErr
	}
	return c.vaultRepo, nil
}

// VaultUseCase returns the vault use case.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	var err error
	c.vaultUseCaseInit.Do(func() {
		c.vaultUseCase, err = c.initVaultUseCase()
		if err != nil {
			c.initErrors["vaultUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultUseCase"]; exists {
		return nil, storedErr
	}
	return c.vaultUseCase, nil
}

// VaultHandler returns the HTTP handler for tokenize and detokenize operations.
func (c *Container) VaultHandler() (*vaultHTTP.VaultHandler, error) {
	var err error
	c.vaultHandlerInit.Do(func() {
		c.vaultHandler, err = c.initVaultHandler()
		if err != nil {
			c.initErrors["vaultHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultHandler"]; exists {
		return nil, storedErr
	}
	return c.vaultHandler, nil
}

// initMasterKey loads the master key from configuration.
func (c *Container) initMasterKey() ([]byte, error) {
	loader := vaultService.NewMasterKeyLoader(c.config.MasterKeyHex, c.config.KMSKeyURI)

	masterKey, err := loader.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load master key: %w", err)
	}

	return masterKey, nil
}

// initCipher creates the cipher from the master key.
func (c *Container) initCipher() (vaultService.Cipher, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for cipher: %w", err)
	}

	cipher, err := vaultService.NewAESCBC(masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return cipher, nil
}

// initVaultRepository creates the vault record repository based on the database driver.
func (c *Container) initVaultRepository() (vaultUseCase.VaultRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for vault repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return vaultRepository.NewPostgreSQLVaultRepository(db), nil
	case database.DriverMySQL:
		return vaultRepository.NewMySQLVaultRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initVaultUseCase creates the vault use case with all its dependencies.
func (c *Container) initVaultUseCase() (vaultUseCase.VaultUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for vault use case: %w", err)
	}

	vaultRepo, err := c.VaultRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault repository for vault use case: %w", err)
	}

	cipher, err := c.Cipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher for vault use case: %w", err)
	}

	tokenGenerator := c.TokenGenerator()

	baseUseCase := vaultUseCase.NewVaultUseCase(
		txManager,
		vaultRepo,
		cipher,
		tokenGenerator,
		c.config.TokenizeParallelism,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
		}
		return vaultUseCase.NewVaultUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initVaultHandler creates the vault HTTP handler with all its dependencies.
func (c *Container) initVaultHandler() (*vaultHTTP.VaultHandler, error) {
	useCase, err := c.VaultUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault use case for vault handler: %w", err)
	}

	logger := c.Logger()

	return vaultHTTP.NewVaultHandler(useCase, logger), nil
}
