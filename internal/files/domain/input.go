package domain

import "time"

// CreateFileInput carries everything needed to store a new encrypted file.
type CreateFileInput struct {
	// Name is the display filename; empty for inline text uploads.
	Name string
	// Payload is the plaintext payload to encrypt.
	Payload []byte
	// Passphrase encrypts the payload; never persisted.
	Passphrase string
	// MaxDownloads and ExpirationDate are the plaintext policy fields; nil
	// when not supplied.
	MaxDownloads   *int
	ExpirationDate *time.Time
	// PolicyEnvelope is an optional encrypted policy envelope whose fields
	// override the plaintext ones. Empty when not supplied.
	PolicyEnvelope string
}

// CreateFileOutput is the result of a successful upload.
type CreateFileOutput struct {
	File *EncryptedFile
	// Token is the plaintext download token, returned exactly once.
	Token string
}

// SweepReport summarizes one reclamation sweep run.
type SweepReport struct {
	// Expired and Exhausted are rows deleted per reason, or rows that would
	// be deleted when DryRun is set.
	Expired   int64
	Exhausted int64
	DryRun    bool
}
