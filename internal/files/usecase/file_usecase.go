package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
	cryptoService "github.com/allisson/trustbox/internal/crypto/service"
	"github.com/allisson/trustbox/internal/database"
	apperrors "github.com/allisson/trustbox/internal/errors"
	filesDomain "github.com/allisson/trustbox/internal/files/domain"
	filesService "github.com/allisson/trustbox/internal/files/service"
)

// fileUseCase implements the FileUseCase interface.
type fileUseCase struct {
	fileRepo      FileRepository
	txManager     database.TxManager
	tokenService  filesService.TokenService
	policyDecoder filesService.PolicyDecoder
	cipher        cryptoService.PassphraseCipher
	suite         cryptoDomain.CipherSuite
	sweepBatch    int
}

// NewFileUseCase creates a new FileUseCase. New objects are encrypted under
// the given suite; retrieval resolves the suite persisted with each row.
func NewFileUseCase(
	fileRepo FileRepository,
	txManager database.TxManager,
	tokenService filesService.TokenService,
	policyDecoder filesService.PolicyDecoder,
	cipher cryptoService.PassphraseCipher,
	suite cryptoDomain.CipherSuite,
	sweepBatch int,
) FileUseCase {
	if sweepBatch <= 0 {
		sweepBatch = filesDomain.SweepBatchSize
	}
	return &fileUseCase{
		fileRepo:      fileRepo,
		txManager:     txManager,
		tokenService:  tokenService,
		policyDecoder: policyDecoder,
		cipher:        cipher,
		suite:         suite,
		sweepBatch:    sweepBatch,
	}
}

// Create encrypts the payload and stores it under a freshly issued token.
func (f *fileUseCase) Create(ctx context.Context, input filesDomain.CreateFileInput) (*filesDomain.CreateFileOutput, error) {
	policy, err := f.resolvePolicy(input)
	if err != nil {
		return nil, err
	}

	if err := f.checkPayloadSize(input.Payload); err != nil {
		return nil, err
	}

	name := input.Name
	if name == "" {
		name = filesDomain.InlineTextName
	}

	envelope, err := f.cipher.Encrypt(input.Payload, input.Passphrase, f.suite.ID)
	if err != nil {
		return nil, err
	}

	// Token issuance retries on digest collisions with a fresh token each
	// attempt. Running out of attempts means the random source is broken;
	// surfaced as an internal failure, never as a caller error.
	for attempt := 0; attempt < filesDomain.MaxTokenAttempts; attempt++ {
		plainToken, digest, err := f.tokenService.Generate()
		if err != nil {
			return nil, err
		}

		file := &filesDomain.EncryptedFile{
			ID:             uuid.Must(uuid.NewV7()),
			TokenDigest:    digest,
			Name:           name,
			Ciphertext:     envelope.Ciphertext,
			Salt:           envelope.Salt,
			Nonce:          envelope.Nonce,
			CipherSuite:    envelope.Suite,
			MaxDownloads:   *policy.MaxDownloads,
			ExpirationDate: policy.ExpirationDate.UTC(),
			DownloadCount:  0,
			CreatedAt:      time.Now().UTC(),
		}

		err = f.fileRepo.Create(ctx, file)
		if err == nil {
			return &filesDomain.CreateFileOutput{File: file, Token: plainToken}, nil
		}
		if errors.Is(err, apperrors.ErrConflict) {
			continue
		}
		return nil, err
	}

	return nil, filesDomain.ErrTokenSpaceExhausted
}

// resolvePolicy merges the plaintext policy fields with the optional
// encrypted envelope and validates the result.
func (f *fileUseCase) resolvePolicy(input filesDomain.CreateFileInput) (filesDomain.Policy, error) {
	policy := filesDomain.Policy{
		MaxDownloads:   input.MaxDownloads,
		ExpirationDate: input.ExpirationDate,
	}

	if input.PolicyEnvelope != "" {
		override, err := f.policyDecoder.Decode(input.PolicyEnvelope, input.Passphrase)
		if err != nil {
			return filesDomain.Policy{}, err
		}
		policy = policy.Merge(override)
	}

	if err := policy.Validate(); err != nil {
		return filesDomain.Policy{}, err
	}
	return policy, nil
}

// checkPayloadSize enforces the upload ceiling against the declared size of
// packaged payloads, falling back to the raw length. The physical length is
// bounded first so the declared size cannot waive it.
func (f *fileUseCase) checkPayloadSize(payload []byte) error {
	if int64(len(payload)) > filesDomain.MaxRawUploadSize {
		return filesDomain.ErrFileTooLarge
	}

	size := int64(len(payload))
	if declared, ok := filesService.DeclaredSize(payload); ok {
		size = declared
	}
	if size > filesDomain.MaxPayloadSize {
		return filesDomain.ErrFileTooLarge
	}
	return nil
}

// Retrieve resolves the token, decrypts and accounts the download.
//
// Precedence on refusal is fixed: unknown token, then expiration, then
// download budget, then passphrase. Decryption happens before accounting so
// a wrong passphrase never burns a download.
func (f *fileUseCase) Retrieve(
	ctx context.Context,
	token, passphrase string,
) (*filesDomain.EncryptedFile, error) {
	digest := f.tokenService.Digest(token)

	file, err := f.fileRepo.GetByTokenDigest(ctx, digest)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if file.Expired(now) {
		return nil, filesDomain.ErrLinkExpired
	}
	if file.Exhausted() {
		return nil, filesDomain.ErrDownloadLimitReached
	}

	plaintext, err := f.cipher.Decrypt(cryptoService.Envelope{
		Ciphertext: file.Ciphertext,
		Salt:       file.Salt,
		Nonce:      file.Nonce,
		Suite:      file.CipherSuite,
	}, passphrase)
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrDecryptionFailed) {
			return nil, filesDomain.ErrWrongPassphrase
		}
		return nil, err
	}

	// The conditional update and the classifying read on refusal run in one
	// transaction so the refusal reason comes from the same snapshot.
	err = f.txManager.WithTx(ctx, func(txCtx context.Context) error {
		accounted, err := f.fileRepo.RegisterDownload(txCtx, file.ID, now)
		if err != nil {
			return err
		}
		if !accounted {
			// Lost the race: another retrieval spent the last download, the
			// expiration boundary passed, or the sweeper deleted the row.
			return f.reclassifyRefusal(txCtx, digest, now)
		}
		return nil
	})
	if err != nil {
		cryptoDomain.Zero(plaintext)
		return nil, err
	}

	file.DownloadCount++
	file.Plaintext = plaintext
	return file, nil
}

// reclassifyRefusal determines why a download registration failed.
func (f *fileUseCase) reclassifyRefusal(ctx context.Context, digest string, now time.Time) error {
	fresh, err := f.fileRepo.GetByTokenDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return filesDomain.ErrFileNotFound
		}
		return err
	}
	if fresh.Expired(now) {
		return filesDomain.ErrLinkExpired
	}
	return filesDomain.ErrDownloadLimitReached
}

// Sweep deletes expired and download-exhausted rows in bounded batches,
// looping until a batch comes back short. The two passes are independent;
// a failure in one does not abort the other's completed work.
func (f *fileUseCase) Sweep(ctx context.Context, dryRun bool) (*filesDomain.SweepReport, error) {
	now := time.Now().UTC()

	if dryRun {
		expired, err := f.fileRepo.CountExpired(ctx, now)
		if err != nil {
			return nil, err
		}
		exhausted, err := f.fileRepo.CountExhausted(ctx)
		if err != nil {
			return nil, err
		}
		return &filesDomain.SweepReport{Expired: expired, Exhausted: exhausted, DryRun: true}, nil
	}

	report := &filesDomain.SweepReport{}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		deleted, err := f.fileRepo.DeleteExpiredBatch(ctx, now, f.sweepBatch)
		report.Expired += deleted
		if err != nil {
			return report, err
		}
		if deleted < int64(f.sweepBatch) {
			break
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		deleted, err := f.fileRepo.DeleteExhaustedBatch(ctx, f.sweepBatch)
		report.Exhausted += deleted
		if err != nil {
			return report, err
		}
		if deleted < int64(f.sweepBatch) {
			break
		}
	}

	return report, nil
}
