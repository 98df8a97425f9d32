package service

import (
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
	apperrors "github.com/allisson/trustbox/internal/errors"
)

// passphraseCipher implements PassphraseCipher over the suite's AEAD.
type passphraseCipher struct{}

// NewPassphraseCipher creates a PassphraseCipher instance. The instance is
// stateless and safe for concurrent use.
func NewPassphraseCipher() PassphraseCipher {
	return &passphraseCipher{}
}

// Encrypt derives a fresh key from the passphrase and a new random salt,
// then seals the plaintext with the suite's AEAD. The suite is resolved
// from the registry by id, mirroring Decrypt's lookup of the stored id.
func (p *passphraseCipher) Encrypt(
	plaintext []byte,
	passphrase string,
	suiteID cryptoDomain.SuiteID,
) (Envelope, error) {
	suite, err := cryptoDomain.SuiteByID(suiteID)
	if err != nil {
		return Envelope{}, err
	}

	salt := make([]byte, suite.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return Envelope{}, apperrors.Wrap(err, "failed to generate salt")
	}

	key := DeriveKey(passphrase, salt, suite)
	defer cryptoDomain.Zero(key)

	aead, err := newAEAD(key, suite.Algorithm)
	if err != nil {
		return Envelope{}, err
	}

	ciphertext, nonce, err := aead.Encrypt(plaintext, nil)
	if err != nil {
		return Envelope{}, apperrors.Wrap(err, "failed to encrypt payload")
	}

	return Envelope{
		Ciphertext: ciphertext,
		Salt:       salt,
		Nonce:      nonce,
		Suite:      suite.ID,
	}, nil
}

// Decrypt re-derives the key from the passphrase and the envelope's salt
// and opens the ciphertext. Authentication failures are reported as
// cryptoDomain.ErrDecryptionFailed; infrastructure errors keep their own
// identity so callers can tell "wrong passphrase" from a broken setup.
func (p *passphraseCipher) Decrypt(envelope Envelope, passphrase string) ([]byte, error) {
	suite, err := cryptoDomain.SuiteByID(envelope.Suite)
	if err != nil {
		return nil, err
	}

	key := DeriveKey(passphrase, envelope.Salt, suite)
	defer cryptoDomain.Zero(key)

	aead, err := newAEAD(key, suite.Algorithm)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Decrypt(envelope.Ciphertext, envelope.Nonce, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return plaintext, nil
}

// newAEAD creates an AEAD cipher instance for the given algorithm.
func newAEAD(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	switch alg {
	case cryptoDomain.AESGCM:
		return NewAESGCM(key)
	case cryptoDomain.ChaCha20:
		return NewChaCha20Poly1305(key)
	default:
		return nil, fmt.Errorf("%w: %s", cryptoDomain.ErrUnsupportedAlgorithm, alg)
	}
}
