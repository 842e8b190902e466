package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretService_GenerateSecret(t *testing.T) {
	svc := NewSecretService()

	plainSecret, hashedSecret, err := svc.GenerateSecret()
	require.NoError(t, err)

	assert.NotEmpty(t, plainSecret)
	assert.NotEmpty(t, hashedSecret)
	assert.NotEqual(t, plainSecret, hashedSecret)

	// Two calls never produce the same secret
	otherPlain, _, err := svc.GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, plainSecret, otherPlain)
}

func TestSecretService_CompareSecret(t *testing.T) {
	svc := NewSecretService()

	plainSecret, hashedSecret, err := svc.GenerateSecret()
	require.NoError(t, err)

	assert.True(t, svc.CompareSecret(plainSecret, hashedSecret))
	assert.False(t, svc.CompareSecret("wrong-secret", hashedSecret))
	assert.False(t, svc.CompareSecret(plainSecret, "not-a-hash"))
	assert.False(t, svc.CompareSecret("", hashedSecret))
}

func TestSecretService_HashSecret(t *testing.T) {
	svc := NewSecretService()

	hash1, err := svc.HashSecret("my-secret")
	require.NoError(t, err)
	hash2, err := svc.HashSecret("my-secret")
	require.NoError(t, err)

	// Argon2id salts each hash independently
	assert.NotEqual(t, hash1, hash2)
	assert.True(t, svc.CompareSecret("my-secret", hash1))
	assert.True(t, svc.CompareSecret("my-secret", hash2))
}
