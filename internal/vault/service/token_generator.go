package service

import (
	"errors"

	"github.com/google/uuid"
)

type uuidTokenGenerator struct{}

// NewUUIDTokenGenerator creates a token generator that produces random UUIDv4 tokens.
func NewUUIDTokenGenerator() TokenGenerator {
	return &uuidTokenGenerator{}
}

// Generate creates a new random UUIDv4 token.
func (g *uuidTokenGenerator) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Validate checks if the token is a valid UUID format.
func (g *uuidTokenGenerator) Validate(token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return errors.New("invalid token format")
	}
	return nil
}
