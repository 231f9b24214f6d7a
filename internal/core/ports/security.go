package ports

// PasswordHasher is a slow, salted one-way hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs a bearer token for a principal identifier.
type TokenIssuer interface {
	Issue(principalID string) (string, error)
}

// TokenVerifier checks signature and expiry and returns the principal identifier.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
