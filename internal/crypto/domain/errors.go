package domain

import (
	"github.com/allisson/trustbox/internal/errors"
)

// Cryptographic operation error definitions.
var (
	// ErrUnsupportedSuite indicates the persisted cipher suite id is not
	// known to this build. Objects written by a newer protocol version
	// must not be decrypted with mismatched parameters.
	ErrUnsupportedSuite = errors.Wrap(errors.ErrInvalidInput, "unsupported cipher suite")

	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the symmetric key length is invalid.
	// All current suites require exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates AEAD authentication failed: the key is
	// wrong or the ciphertext was tampered with. The specific cause is not
	// disclosed to prevent information leakage, but the error remains
	// distinguishable from infrastructure faults via ErrAuthenticationFailed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrAuthenticationFailed, "decryption failed")
)
