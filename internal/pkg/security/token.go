package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

// TokenTTL is the fixed validity window of a bearer token.
const TokenTTL = 30 * 24 * time.Hour

// Claims is the token payload: only the principal identifier plus the
// registered expiry/issued-at times.
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 bearer tokens.
type JWTManager struct {
	secret []byte
	now    func() time.Time
}

// NewJWTManager fails with domain.ErrMissingSigningSecret when secret is
// empty; callers treat that as fatal at startup.
func NewJWTManager(secret string) (*JWTManager, error) {
	if secret == "" {
		return nil, domain.ErrMissingSigningSecret
	}
	return &JWTManager{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for principalID expiring TokenTTL from now.
func (m *JWTManager) Issue(principalID string) (string, error) {
	if m == nil || len(m.secret) == 0 {
		return "", domain.ErrMissingSigningSecret
	}

	now := m.now()
	claims := Claims{
		ID: principalID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the principal id. Any
// failure is reported as domain.ErrTokenInvalid wrapping the cause.
func (m *JWTManager) Verify(token string) (string, error) {
	if m == nil || len(m.secret) == 0 {
		return "", domain.ErrMissingSigningSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrTokenInvalid, errors.New("missing principal id"))
	}
	return claims.ID, nil
}
