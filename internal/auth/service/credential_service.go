package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
	apperrors "github.com/zasta/tokenvault/internal/errors"
)

// credentialClaims is the JWT payload for a bearer credential. The service ID
// travels in the registered subject claim.
type credentialClaims struct {
	Role authDomain.Role `json:"role"`
	jwt.RegisteredClaims
}

// credentialService implements CredentialService with HMAC-SHA256 signed JWTs.
// Credentials are stateless: verification needs only the signing secret, no
// storage lookup.
type credentialService struct {
	signingSecret []byte
	expiration    time.Duration
}

// NewCredentialService creates a CredentialService that signs credentials with
// the given secret and lifetime.
func NewCredentialService(signingSecret string, expiration time.Duration) (CredentialService, error) {
	if signingSecret == "" {
		return nil, apperrors.New("credential signing secret must not be empty")
	}
	if expiration <= 0 {
		return nil, apperrors.New("credential expiration must be positive")
	}

	return &credentialService{
		signingSecret: []byte(signingSecret),
		expiration:    expiration,
	}, nil
}

// Issue creates a signed credential for the given service identity.
func (s *credentialService) Issue(serviceID string, role authDomain.Role) (*authDomain.Credential, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.expiration)

	claims := credentialClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   serviceID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingSecret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign credential")
	}

	return &authDomain.Credential{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify validates a credential string and returns the principal it was issued
// to. Bad signature, wrong algorithm, tampering, expiry, and malformed tokens
// all collapse into domain.ErrInvalidCredentials.
func (s *credentialService) Verify(token string) (*authDomain.Principal, error) {
	claims := &credentialClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, authDomain.ErrInvalidCredentials
		}
		return s.signingSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, authDomain.ErrInvalidCredentials
	}

	if claims.Subject == "" || !claims.Role.IsValid() {
		return nil, authDomain.ErrInvalidCredentials
	}

	return &authDomain.Principal{
		ServiceID: claims.Subject,
		Role:      claims.Role,
	}, nil
}
