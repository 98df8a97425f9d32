// Package service provides cryptographic services for passphrase-based
// envelope encryption: PBKDF2 key derivation and AEAD ciphers
// (AES-256-GCM, ChaCha20-Poly1305) selected by cipher suite.
package service

import (
	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// Envelope is the result of a passphrase encryption: everything that must
// be persisted to decrypt later, except the passphrase itself.
type Envelope struct {
	Ciphertext []byte
	Salt       []byte
	Nonce      []byte
	Suite      cryptoDomain.SuiteID
}

// PassphraseCipher performs envelope encryption with keys derived from a
// caller passphrase and a per-object random salt.
type PassphraseCipher interface {
	// Encrypt derives a fresh key from the passphrase and a new random salt
	// under the registered suite, then AEAD-encrypts the plaintext. The
	// suite id is resolved through the registry, the same lookup Decrypt
	// performs on the stored id, so both sides always derive with the same
	// KDF parameters. Unknown ids fail with
	// cryptoDomain.ErrUnsupportedSuite.
	Encrypt(plaintext []byte, passphrase string, suiteID cryptoDomain.SuiteID) (Envelope, error)

	// Decrypt re-derives the key from the passphrase and stored salt and
	// opens the ciphertext. Returns cryptoDomain.ErrDecryptionFailed when
	// the passphrase is wrong or the ciphertext was tampered with; no
	// partial plaintext is ever returned.
	Decrypt(envelope Envelope, passphrase string) ([]byte, error)
}
