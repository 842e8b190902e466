package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"gocloud.dev/secrets"
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSKeeper wraps the operations needed to protect a master key with KMS.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Close() error
}

// KeeperOpener opens a KMS keeper from a gocloud.dev URI.
type KeeperOpener func(ctx context.Context, uri string) (KMSKeeper, error)

// DefaultKeeperOpener opens a real gocloud.dev keeper.
func DefaultKeeperOpener(ctx context.Context, uri string) (KMSKeeper, error) {
	return secrets.OpenKeeper(ctx, uri)
}

// RunCreateMasterKey generates a cryptographically secure 32-byte master key
// for vault record encryption.
//
// Without a KMS key URI, the key is printed hex-encoded for MASTER_KEY_HEX.
// With a KMS key URI, the key is wrapped by the keeper first and the base64
// ciphertext is printed along with KMS_KEY_URI; the server unwraps it at
// startup. Key material is zeroed from memory after encoding.
//
// Security: never use the base64key:// (localsecrets) keeper in production.
// Use cloud KMS keepers (gcpkms, awskms, azurekeyvault, hashivault).
func RunCreateMasterKey(
	ctx context.Context,
	openKeeper KeeperOpener,
	writer io.Writer,
	kmsKeyURI string,
) error {
	masterKey := make([]byte, 32)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer func() {
		for i := range masterKey {
			masterKey[i] = 0
		}
	}()

	if kmsKeyURI == "" {
		_, _ = fmt.Fprintln(writer, "# Master Key Configuration (plain hex mode)")
		_, _ = fmt.Fprintln(writer, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "MASTER_KEY_HEX=\"%s\"\n", hex.EncodeToString(masterKey))
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintln(writer, "# For production, prefer wrapping the key with a KMS:")
		_, _ = fmt.Fprintln(writer, "#   tokenvault create-master-key --kms-key-uri=\"awskms:///alias/...\"")
		return nil
	}

	keeper, err := openKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			_, _ = fmt.Fprintf(writer, "# Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, masterKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}

	encodedKey := base64.StdEncoding.EncodeToString(ciphertext)

	_, _ = fmt.Fprintln(writer, "# Master Key Configuration (KMS mode)")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "MASTER_KEY_HEX=\"%s\"\n", encodedKey)

	return nil
}
