package service

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
)

// DeriveKey derives a symmetric key from a passphrase and salt using
// PBKDF2-HMAC-SHA256 with the suite's iteration count.
//
// The iteration count is a versioned protocol constant: any client-side
// implementation of the same scheme must use the identical value or
// decryption will fail with an authentication error. Callers should Zero()
// the returned key after use.
func DeriveKey(passphrase string, salt []byte, suite cryptoDomain.CipherSuite) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, suite.KDFIterations, suite.KeySize, sha256.New)
}
