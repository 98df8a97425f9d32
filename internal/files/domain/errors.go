package domain

import (
	"github.com/allisson/trustbox/internal/errors"
)

// Encrypted file lifecycle error definitions. Each maps to a distinct
// caller-visible outcome so clients can branch on not-found vs expired vs
// limit vs wrong-passphrase vs oversized vs malformed-policy.
var (
	// ErrFileNotFound indicates the presented token resolves to nothing.
	ErrFileNotFound = errors.Wrap(errors.ErrNotFound, "file not found")

	// ErrLinkExpired indicates the file exists but its expiration date has passed.
	ErrLinkExpired = errors.Wrap(errors.ErrExpired, "link expired")

	// ErrDownloadLimitReached indicates the download budget is spent.
	ErrDownloadLimitReached = errors.Wrap(errors.ErrLimitReached, "download limit reached")

	// ErrWrongPassphrase indicates decryption failed authentication: the
	// presented passphrase is wrong or the stored ciphertext is corrupted.
	// Never mutates the download count.
	ErrWrongPassphrase = errors.Wrap(errors.ErrAuthenticationFailed, "invalid passphrase or corrupted file")

	// ErrFileTooLarge indicates the original payload exceeds MaxPayloadSize.
	ErrFileTooLarge = errors.Wrap(errors.ErrPayloadTooLarge, "file exceeds maximum allowed size")

	// ErrTokenSpaceExhausted indicates token issuance kept colliding past
	// MaxTokenAttempts. Treated as an operational anomaly, not a caller error.
	ErrTokenSpaceExhausted = errors.New("failed to generate unique download token")

	// ErrInvalidPolicyEnvelope indicates the encrypted policy envelope could
	// not be decoded: bad base encoding, malformed packing, failed
	// decryption, or malformed inner payload. Reported uniformly, never
	// partially applied.
	ErrInvalidPolicyEnvelope = errors.Wrap(errors.ErrInvalidInput, "invalid policy envelope")

	// ErrMissingPolicy indicates that after envelope decoding (or without an
	// envelope) the max downloads or expiration date is absent or invalid.
	ErrMissingPolicy = errors.Wrap(errors.ErrInvalidInput, "missing or invalid access policy")

	// ErrExactlyOnePayload indicates the upload supplied neither or both of
	// file and inline text.
	ErrExactlyOnePayload = errors.Wrap(errors.ErrInvalidInput, "exactly one of file or text must be provided")
)
