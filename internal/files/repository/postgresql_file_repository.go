// Package repository implements data persistence for encrypted files.
// Repositories support both PostgreSQL and MySQL. All mutation goes through
// three operations: row creation, the atomic conditional download
// accounting, and the sweeper's conditional batch deletes.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
	"github.com/allisson/trustbox/internal/database"
	apperrors "github.com/allisson/trustbox/internal/errors"
	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pqUniqueViolation = "23505"

// PostgreSQLFileRepository implements EncryptedFile persistence for PostgreSQL.
type PostgreSQLFileRepository struct {
	db *sql.DB
}

// NewPostgreSQLFileRepository creates a new PostgreSQL file repository instance.
func NewPostgreSQLFileRepository(db *sql.DB) *PostgreSQLFileRepository {
	return &PostgreSQLFileRepository{db: db}
}

// Create inserts a new encrypted file. A unique violation on token_digest
// is mapped to apperrors.ErrConflict so the use case can retry with a
// fresh token.
func (p *PostgreSQLFileRepository) Create(ctx context.Context, file *filesDomain.EncryptedFile) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO encrypted_files
			  (id, token_digest, name, ciphertext, salt, nonce, cipher_suite,
			   max_downloads, expiration_date, download_count, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		file.ID,
		file.TokenDigest,
		file.Name,
		file.Ciphertext,
		file.Salt,
		file.Nonce,
		int16(file.CipherSuite),
		file.MaxDownloads,
		file.ExpirationDate,
		file.DownloadCount,
		file.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return apperrors.Wrap(apperrors.ErrConflict, "token digest already exists")
		}
		return apperrors.Wrap(err, "failed to create encrypted file")
	}
	return nil
}

// GetByTokenDigest retrieves an encrypted file by its token digest.
// Returns ErrFileNotFound if no row matches.
func (p *PostgreSQLFileRepository) GetByTokenDigest(
	ctx context.Context,
	digest string,
) (*filesDomain.EncryptedFile, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_digest, name, ciphertext, salt, nonce, cipher_suite,
			  	  max_downloads, expiration_date, download_count, created_at
			  FROM encrypted_files
			  WHERE token_digest = $1`

	var file filesDomain.EncryptedFile
	var suite int16

	err := querier.QueryRowContext(ctx, query, digest).Scan(
		&file.ID,
		&file.TokenDigest,
		&file.Name,
		&file.Ciphertext,
		&file.Salt,
		&file.Nonce,
		&suite,
		&file.MaxDownloads,
		&file.ExpirationDate,
		&file.DownloadCount,
		&file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, filesDomain.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get encrypted file by token digest")
	}

	file.CipherSuite = cryptoDomain.SuiteID(suite)
	return &file, nil
}

// RegisterDownload atomically accounts one download. The increment is a
// single conditional UPDATE guarded by the same policy checks the read
// path performs, so two concurrent retrievals at the last remaining
// download can never both succeed. Returns false when the guard failed:
// the row was concurrently exhausted, expired, or deleted.
func (p *PostgreSQLFileRepository) RegisterDownload(
	ctx context.Context,
	fileID uuid.UUID,
	now time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE encrypted_files
			  SET download_count = download_count + 1
			  WHERE id = $1
			  	AND download_count < max_downloads
			  	AND expiration_date > $2`

	result, err := querier.ExecContext(ctx, query, fileID, now)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to register download")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to read affected rows")
	}

	return affected == 1, nil
}

// DeleteExpiredBatch deletes up to limit rows whose expiration date has
// passed, re-evaluating the condition in SQL at delete time. Returns the
// number of rows deleted.
func (p *PostgreSQLFileRepository) DeleteExpiredBatch(
	ctx context.Context,
	now time.Time,
	limit int,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM encrypted_files
			  WHERE id IN (
			  	SELECT id FROM encrypted_files
			  	WHERE expiration_date <= $1
			  	LIMIT $2
			  )`

	result, err := querier.ExecContext(ctx, query, now, limit)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired files")
	}

	return result.RowsAffected()
}

// DeleteExhaustedBatch deletes up to limit rows whose download budget is
// spent. Returns the number of rows deleted.
func (p *PostgreSQLFileRepository) DeleteExhaustedBatch(ctx context.Context, limit int) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM encrypted_files
			  WHERE id IN (
			  	SELECT id FROM encrypted_files
			  	WHERE download_count >= max_downloads
			  	LIMIT $1
			  )`

	result, err := querier.ExecContext(ctx, query, limit)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete exhausted files")
	}

	return result.RowsAffected()
}

// CountExpired counts rows past their expiration date (sweep dry-run).
func (p *PostgreSQLFileRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	query := `SELECT COUNT(*) FROM encrypted_files WHERE expiration_date <= $1`
	if err := querier.QueryRowContext(ctx, query, now).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired files")
	}
	return count, nil
}

// CountExhausted counts rows at their download limit (sweep dry-run).
func (p *PostgreSQLFileRepository) CountExhausted(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	query := `SELECT COUNT(*) FROM encrypted_files WHERE download_count >= max_downloads`
	if err := querier.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count exhausted files")
	}
	return count, nil
}
