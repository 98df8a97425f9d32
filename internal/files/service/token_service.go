package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/allisson/trustbox/internal/errors"
	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

// tokenService implements TokenService using SHA-256 for token digests.
type tokenService struct{}

// NewTokenService creates a new TokenService instance.
func NewTokenService() TokenService {
	return &tokenService{}
}

// Generate creates a new cryptographically secure random token of
// TokenBytes bytes (128 bits), rendered with the URL-safe base64 alphabet
// without padding. Returns the plain token and its SHA-256 digest; the
// plain token is handed to the caller once and never stored.
func (t *tokenService) Generate() (string, string, error) {
	randomBytes := make([]byte, filesDomain.TokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken := base64.RawURLEncoding.EncodeToString(randomBytes)
	return plainToken, t.Digest(plainToken), nil
}

// Digest hashes a plain token using SHA-256.
// Returns the digest as a 64-character hexadecimal string.
func (t *tokenService) Digest(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}
