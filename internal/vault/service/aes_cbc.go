package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	vaultDomain "github.com/zasta/tokenvault/internal/vault/domain"
)

// AESCBCCipher implements the Cipher interface using AES-256-CBC with PKCS#7 padding.
//
// Each encryption generates a fresh random 16-byte IV, so encrypting the same
// value twice yields different ciphertexts. The IV is returned separately and
// must be stored alongside the ciphertext for decryption.
//
// The cipher instance is stateless and safe for concurrent use from multiple
// goroutines.
type AESCBCCipher struct {
	block cipher.Block
}

// NewAESCBC creates a new AES-256-CBC cipher instance. The key must be exactly
// 32 bytes (256 bits).
func NewAESCBC(key []byte) (*AESCBCCipher, error) {
	if len(key) != 32 {
		return nil, errors.New("key must be exactly 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	return &AESCBCCipher{block: block}, nil
}

// Encrypt encrypts plaintext using AES-256-CBC with a freshly generated random IV.
// The plaintext is padded to the block size with PKCS#7 before encryption, so
// empty plaintexts produce one full block of ciphertext.
func (a *AESCBCCipher) Encrypt(plaintext []byte) (ciphertext, iv []byte, err error) {
	iv = make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	padded := padPKCS7(plaintext, aes.BlockSize)
	ciphertext = make([]byte, len(padded))

	mode := cipher.NewCBCEncrypter(a.block, iv)
	mode.CryptBlocks(ciphertext, padded)

	return ciphertext, iv, nil
}

// Decrypt decrypts ciphertext using AES-256-CBC with the provided IV and strips
// the PKCS#7 padding. Any structural fault (wrong IV length, ciphertext not a
// multiple of the block size, malformed padding) collapses into
// domain.ErrDecryptionFailed so callers cannot distinguish padding faults from
// other corruption.
func (a *AESCBCCipher) Decrypt(ciphertext, iv []byte) ([]byte, error) {
	if len(iv) != aes.BlockSize {
		return nil, vaultDomain.ErrDecryptionFailed
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, vaultDomain.ErrDecryptionFailed
	}

	padded := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(a.block, iv)
	mode.CryptBlocks(padded, ciphertext)

	plaintext, err := unpadPKCS7(padded, aes.BlockSize)
	if err != nil {
		return nil, vaultDomain.ErrDecryptionFailed
	}

	return plaintext, nil
}

// padPKCS7 appends PKCS#7 padding up to the block size.
func padPKCS7(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// unpadPKCS7 validates and strips PKCS#7 padding. Every padding byte must
// equal the pad length; the comparison runs over all of them before the
// verdict is taken.
func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, errors.New("invalid padding length")
	}

	valid := 1
	for _, b := range data[len(data)-padLen:] {
		valid &= subtle.ConstantTimeByteEq(b, byte(padLen))
	}
	if valid != 1 {
		return nil, errors.New("invalid padding bytes")
	}

	return data[:len(data)-padLen], nil
}
