// Package usecase implements business logic orchestration for the encrypted
// file lifecycle: passphrase-encrypted uploads with token issuance,
// decrypt-and-account retrieval, and the reclamation sweep.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

// FileRepository defines the interface for EncryptedFile persistence operations.
type FileRepository interface {
	Create(ctx context.Context, file *filesDomain.EncryptedFile) error
	GetByTokenDigest(ctx context.Context, digest string) (*filesDomain.EncryptedFile, error)

	// RegisterDownload accounts one download in a single atomic conditional
	// update. Returns false without error when the row no longer satisfies
	// the download policy (expired, exhausted, or deleted).
	RegisterDownload(ctx context.Context, fileID uuid.UUID, now time.Time) (bool, error)

	// DeleteExpiredBatch deletes up to limit expired rows, returning the
	// number deleted.
	DeleteExpiredBatch(ctx context.Context, now time.Time, limit int) (int64, error)

	// DeleteExhaustedBatch deletes up to limit download-exhausted rows,
	// returning the number deleted.
	DeleteExhaustedBatch(ctx context.Context, limit int) (int64, error)

	CountExpired(ctx context.Context, now time.Time) (int64, error)
	CountExhausted(ctx context.Context) (int64, error)
}

// FileUseCase defines the interface for encrypted file lifecycle business logic.
type FileUseCase interface {
	// Create encrypts the payload and stores it under a freshly issued
	// download token. The plaintext token is returned once and never stored.
	Create(ctx context.Context, input filesDomain.CreateFileInput) (*filesDomain.CreateFileOutput, error)

	// Retrieve resolves the token, decrypts the payload with the passphrase
	// and accounts the download in one operation.
	//
	// Security Note: The returned EncryptedFile carries plaintext data in
	// the Plaintext field. Callers MUST zero it after use with
	// cryptoDomain.Zero(file.Plaintext).
	Retrieve(ctx context.Context, token, passphrase string) (*filesDomain.EncryptedFile, error)

	// Sweep deletes expired and download-exhausted rows in bounded batches.
	// With dryRun set it only counts eligible rows.
	Sweep(ctx context.Context, dryRun bool) (*filesDomain.SweepReport, error)
}
