package service

import (
	"encoding/base64"
	"encoding/json"

	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
	cryptoService "github.com/allisson/trustbox/internal/crypto/service"
	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

// policyDecoder implements PolicyDecoder over the passphrase cipher.
//
// The envelope packs, in order: salt, nonce, AEAD ciphertext of a JSON
// policy object, all base64-encoded. There is no version byte in the
// packing, so the deployment's configured suite must match the client
// tooling, exactly as the KDF iteration count must.
type policyDecoder struct {
	cipher cryptoService.PassphraseCipher
	suite  cryptoDomain.CipherSuite
}

// NewPolicyDecoder creates a PolicyDecoder using the given cipher suite.
func NewPolicyDecoder(
	cipher cryptoService.PassphraseCipher,
	suite cryptoDomain.CipherSuite,
) PolicyDecoder {
	return &policyDecoder{cipher: cipher, suite: suite}
}

// Decode unpacks and decrypts the envelope. Every failure mode (bad
// base64, short packing, authentication failure, malformed JSON) comes
// back as ErrInvalidPolicyEnvelope so a caller can't distinguish a wrong
// passphrase from a corrupted envelope, and nothing is ever partially applied.
func (d *policyDecoder) Decode(envelopeB64 string, passphrase string) (filesDomain.Policy, error) {
	raw, err := base64.StdEncoding.DecodeString(envelopeB64)
	if err != nil {
		return filesDomain.Policy{}, filesDomain.ErrInvalidPolicyEnvelope
	}

	// The packing must at least hold the salt, the nonce, and a full
	// authentication tag.
	minLen := d.suite.SaltSize + d.suite.NonceSize + 16
	if len(raw) < minLen {
		return filesDomain.Policy{}, filesDomain.ErrInvalidPolicyEnvelope
	}

	envelope := cryptoService.Envelope{
		Salt:       raw[:d.suite.SaltSize],
		Nonce:      raw[d.suite.SaltSize : d.suite.SaltSize+d.suite.NonceSize],
		Ciphertext: raw[d.suite.SaltSize+d.suite.NonceSize:],
		Suite:      d.suite.ID,
	}

	payload, err := d.cipher.Decrypt(envelope, passphrase)
	if err != nil {
		return filesDomain.Policy{}, filesDomain.ErrInvalidPolicyEnvelope
	}

	var policy filesDomain.Policy
	if err := json.Unmarshal(payload, &policy); err != nil {
		return filesDomain.Policy{}, filesDomain.ErrInvalidPolicyEnvelope
	}

	return policy, nil
}
