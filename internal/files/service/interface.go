// Package service provides domain services for the encrypted file module:
// download token issuance, policy envelope decoding, and the packaged
// upload size probe.
package service

import (
	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

// TokenService issues and digests opaque download tokens. Only digests are
// ever stored; lookups on presented tokens always go through Digest.
type TokenService interface {
	// Generate creates a new high-entropy download token.
	// Returns the plain token and its digest.
	Generate() (plainToken string, digest string, err error)

	// Digest computes the deterministic one-way digest of a plain token.
	Digest(plainToken string) string
}

// PolicyDecoder decrypts an optional policy envelope carried with an upload.
type PolicyDecoder interface {
	// Decode unpacks and decrypts a base64 policy envelope with the given
	// passphrase. Any failure in the pipeline is reported uniformly as
	// filesDomain.ErrInvalidPolicyEnvelope.
	Decode(envelopeB64 string, passphrase string) (filesDomain.Policy, error)
}
