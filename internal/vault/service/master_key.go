package service

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"gocloud.dev/secrets"

	vaultDomain "github.com/zasta/tokenvault/internal/vault/domain"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

const masterKeySize = 32

// masterKeyLoader resolves the vault master key from configuration. When a KMS
// key URI is configured the key material is treated as a base64 ciphertext and
// unwrapped through gocloud.dev/secrets; otherwise it is hex-decoded directly.
type masterKeyLoader struct {
	keyMaterial string
	kmsKeyURI   string
}

// NewMasterKeyLoader creates a MasterKeyLoader. keyMaterial is the hex-encoded
// key, or the base64 KMS ciphertext when kmsKeyURI is non-empty.
func NewMasterKeyLoader(keyMaterial, kmsKeyURI string) MasterKeyLoader {
	return &masterKeyLoader{
		keyMaterial: keyMaterial,
		kmsKeyURI:   kmsKeyURI,
	}
}

// Load returns the 32-byte master key.
func (m *masterKeyLoader) Load(ctx context.Context) ([]byte, error) {
	if m.kmsKeyURI != "" {
		return m.loadFromKMS(ctx)
	}
	return m.loadFromHex()
}

func (m *masterKeyLoader) loadFromHex() ([]byte, error) {
	key, err := hex.DecodeString(m.keyMaterial)
	if err != nil || len(key) != masterKeySize {
		return nil, vaultDomain.ErrInvalidMasterKey
	}
	return key, nil
}

func (m *masterKeyLoader) loadFromKMS(ctx context.Context) ([]byte, error) {
	wrapped, err := base64.StdEncoding.DecodeString(m.keyMaterial)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped master key: %w", err)
	}

	keeper, err := secrets.OpenKeeper(ctx, m.kmsKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer keeper.Close()

	key, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap master key: %w", err)
	}
	if len(key) != masterKeySize {
		vaultDomain.Zero(key)
		return nil, vaultDomain.ErrInvalidMasterKey
	}

	return key, nil
}
