// Package domain defines the core domain model for token-gated encrypted
// file storage. A file is encrypted under a passphrase-derived key, stored
// with only the digest of its download token, and becomes permanently
// unreadable once expired or download-exhausted.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
)

// EncryptedFile represents a passphrase-encrypted object with download
// accounting. It is the only persisted entity: created once by an upload,
// mutated only by the atomic download accounting, and destroyed only by the
// reclamation sweep.
type EncryptedFile struct {
	// ID is the immutable surrogate key assigned at creation.
	ID uuid.UUID
	// TokenDigest is the SHA-256 hex digest of the issued download token.
	// The plaintext token is handed to the caller once and never persisted.
	TokenDigest string
	// Name is the user-supplied filename, or a synthetic name for inline text.
	Name string
	// Ciphertext is the AEAD output; never decrypted at rest.
	Ciphertext []byte
	// Salt is the per-object random KDF salt needed to re-derive the key.
	Salt []byte
	// Nonce is the AEAD nonce used for this object.
	Nonce []byte
	// CipherSuite is the protocol version the object was encrypted under.
	CipherSuite cryptoDomain.SuiteID
	// MaxDownloads is the download budget, set at creation and immutable.
	MaxDownloads int
	// ExpirationDate is the UTC instant after which the object is unreadable.
	ExpirationDate time.Time
	// DownloadCount starts at 0 and only ever increases, never past MaxDownloads.
	DownloadCount int
	// CreatedAt is the UTC creation timestamp.
	CreatedAt time.Time

	// Plaintext holds the decrypted payload in memory only, populated by a
	// successful retrieval; must be zeroed after use.
	Plaintext []byte `json:"-"`
}

// Expired reports whether the file is past its expiration date at the
// given instant. The boundary itself is expired: ExpirationDate == now is
// no longer readable and is eligible for reclamation.
func (f *EncryptedFile) Expired(now time.Time) bool {
	return !f.ExpirationDate.After(now)
}

// Exhausted reports whether the download budget is spent.
func (f *EncryptedFile) Exhausted() bool {
	return f.DownloadCount >= f.MaxDownloads
}

// Policy carries the access policy of an upload: the download budget and
// expiration date. It arrives either as plaintext form fields or inside an
// encrypted policy envelope that overrides them.
type Policy struct {
	MaxDownloads   *int       `json:"max_downloads,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// Merge overlays the receiver with any fields present in override.
func (p Policy) Merge(override Policy) Policy {
	if override.MaxDownloads != nil {
		p.MaxDownloads = override.MaxDownloads
	}
	if override.ExpirationDate != nil {
		p.ExpirationDate = override.ExpirationDate
	}
	return p
}

// Validate checks that the merged policy is complete and usable.
// Returns ErrMissingPolicy when either field is absent or invalid.
func (p Policy) Validate() error {
	if p.MaxDownloads == nil || *p.MaxDownloads < 1 {
		return ErrMissingPolicy
	}
	if p.ExpirationDate == nil || p.ExpirationDate.IsZero() {
		return ErrMissingPolicy
	}
	return nil
}
