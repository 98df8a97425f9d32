// Package domain defines the cryptographic protocol constants for
// passphrase-based envelope encryption. Every parameter that a client-side
// implementation must reproduce (KDF, iteration count, salt size, AEAD
// algorithm) is carried by a versioned CipherSuite rather than a hidden
// default, so a future parameter change bumps the suite id while objects
// encrypted under older suites remain decryptable.
package domain

// Algorithm represents the AEAD algorithm used for envelope encryption.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	// Preferred on CPUs with AES-NI hardware acceleration.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption
	// algorithm. Constant-time in software, preferred without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// SuiteID identifies a versioned set of protocol constants. The id is
// persisted alongside each object's salt.
type SuiteID uint8

const (
	// SuiteV1 is PBKDF2-HMAC-SHA256 (1,200,000 iterations, 16-byte salt,
	// 32-byte key) with AES-256-GCM.
	SuiteV1 SuiteID = 1

	// SuiteV2 is the same KDF parameters as SuiteV1 with ChaCha20-Poly1305.
	SuiteV2 SuiteID = 2
)

// CipherSuite bundles the KDF and AEAD parameters for one protocol version.
type CipherSuite struct {
	// ID is the persisted suite version tag.
	ID SuiteID
	// KDFIterations is the PBKDF2 iteration count. It is a protocol
	// constant shared with client-side implementations, not a tunable.
	KDFIterations int
	// SaltSize is the per-object random salt length in bytes.
	SaltSize int
	// KeySize is the derived symmetric key length in bytes.
	KeySize int
	// NonceSize is the AEAD nonce length in bytes.
	NonceSize int
	// Algorithm is the AEAD algorithm keys are used with.
	Algorithm Algorithm
}

// KDF parameters shared by all current suites. The iteration count matches
// the reference client tooling and must never change within a suite.
const (
	kdfIterations = 1_200_000
	saltSize      = 16
	keySize       = 32
	nonceSize     = 12
)

var suites = map[SuiteID]CipherSuite{
	SuiteV1: {
		ID:            SuiteV1,
		KDFIterations: kdfIterations,
		SaltSize:      saltSize,
		KeySize:       keySize,
		NonceSize:     nonceSize,
		Algorithm:     AESGCM,
	},
	SuiteV2: {
		ID:            SuiteV2,
		KDFIterations: kdfIterations,
		SaltSize:      saltSize,
		KeySize:       keySize,
		NonceSize:     nonceSize,
		Algorithm:     ChaCha20,
	},
}

// SuiteByID returns the cipher suite for the given persisted id.
// Returns ErrUnsupportedSuite for unknown ids so rows written by a newer
// deployment fail loudly instead of decrypting with wrong parameters.
func SuiteByID(id SuiteID) (CipherSuite, error) {
	suite, ok := suites[id]
	if !ok {
		return CipherSuite{}, ErrUnsupportedSuite
	}
	return suite, nil
}

// DefaultSuite returns the suite used for newly created objects.
func DefaultSuite() CipherSuite {
	return suites[SuiteV1]
}
