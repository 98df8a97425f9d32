package domain

// Protocol and operational constants for the encrypted file lifecycle.
const (
	// MaxPayloadSize is the ceiling on the original (pre-encryption)
	// payload size in bytes: 2 MiB.
	MaxPayloadSize = 2 << 20

	// MaxRawUploadSize caps the physical length of an upload body at 4 MiB.
	// Packaged containers carry metadata around the payload, so the body
	// may legitimately exceed the declared size; this bound keeps a small
	// declared size from smuggling an arbitrarily large body past the
	// ceiling check.
	MaxRawUploadSize = 4 << 20

	// TokenBytes is the number of random bytes drawn per download token.
	// 16 bytes gives 128 bits of entropy, above the 96-bit floor.
	TokenBytes = 16

	// MaxTokenAttempts caps the token issuance retry loop. Exceeding it
	// means the random source is broken or the collision rate is
	// implausible; it is an operational alarm, not a user error.
	MaxTokenAttempts = 5

	// SweepBatchSize is the default number of rows deleted per sweep batch,
	// bounding how long a single delete holds locks.
	SweepBatchSize = 500

	// InlineTextName is the synthetic display name for inline text uploads.
	InlineTextName = "note.txt"
)
