package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
	"github.com/allisson/trustbox/internal/database"
	apperrors "github.com/allisson/trustbox/internal/errors"
	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

// mysqlDuplicateEntry is the MySQL error number for duplicate key violations.
const mysqlDuplicateEntry = 1062

// MySQLFileRepository implements EncryptedFile persistence for MySQL.
// UUIDs are stored as CHAR(36) strings since MySQL has no native UUID type.
type MySQLFileRepository struct {
	db *sql.DB
}

// NewMySQLFileRepository creates a new MySQL file repository instance.
func NewMySQLFileRepository(db *sql.DB) *MySQLFileRepository {
	return &MySQLFileRepository{db: db}
}

// Create inserts a new encrypted file. A duplicate entry on token_digest
// is mapped to apperrors.ErrConflict so the use case can retry with a
// fresh token.
func (m *MySQLFileRepository) Create(ctx context.Context, file *filesDomain.EncryptedFile) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO encrypted_files
			  (id, token_digest, name, ciphertext, salt, nonce, cipher_suite,
			   max_downloads, expiration_date, download_count, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		file.ID.String(),
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
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperrors.Wrap(apperrors.ErrConflict, "token digest already exists")
		}
		return apperrors.Wrap(err, "failed to create encrypted file")
	}
	return nil
}

// GetByTokenDigest retrieves an encrypted file by its token digest.
// Returns ErrFileNotFound if no row matches.
func (m *MySQLFileRepository) GetByTokenDigest(
	ctx context.Context,
	digest string,
) (*filesDomain.EncryptedFile, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_digest, name, ciphertext, salt, nonce, cipher_suite,
			  	  max_downloads, expiration_date, download_count, created_at
			  FROM encrypted_files
			  WHERE token_digest = ?`

	var file filesDomain.EncryptedFile
	var id string
	var suite int16

	err := querier.QueryRowContext(ctx, query, digest).Scan(
		&id,
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

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse encrypted file id")
	}

	file.ID = parsed
	file.CipherSuite = cryptoDomain.SuiteID(suite)
	return &file, nil
}

// RegisterDownload atomically accounts one download via a single
// conditional UPDATE. Returns false when the guard failed: the row was
// concurrently exhausted, expired, or deleted.
func (m *MySQLFileRepository) RegisterDownload(
	ctx context.Context,
	fileID uuid.UUID,
	now time.Time,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE encrypted_files
			  SET download_count = download_count + 1
			  WHERE id = ?
			  	AND download_count < max_downloads
			  	AND expiration_date > ?`

	result, err := querier.ExecContext(ctx, query, fileID.String(), now)
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
// passed. MySQL allows LIMIT directly on DELETE, so no subquery is needed.
func (m *MySQLFileRepository) DeleteExpiredBatch(
	ctx context.Context,
	now time.Time,
	limit int,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM encrypted_files WHERE expiration_date <= ? LIMIT ?`

	result, err := querier.ExecContext(ctx, query, now, limit)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired files")
	}

	return result.RowsAffected()
}

// DeleteExhaustedBatch deletes up to limit rows whose download budget is spent.
func (m *MySQLFileRepository) DeleteExhaustedBatch(ctx context.Context, limit int) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM encrypted_files WHERE download_count >= max_downloads LIMIT ?`

	result, err := querier.ExecContext(ctx, query, limit)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete exhausted files")
	}

	return result.RowsAffected()
}

// CountExpired counts rows past their expiration date (sweep dry-run).
func (m *MySQLFileRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	query := `SELECT COUNT(*) FROM encrypted_files WHERE expiration_date <= ?`
	if err := querier.QueryRowContext(ctx, query, now).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired files")
	}
	return count, nil
}

// CountExhausted counts rows at their download limit (sweep dry-run).
func (m *MySQLFileRepository) CountExhausted(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	query := `SELECT COUNT(*) FROM encrypted_files WHERE download_count >= max_downloads`
	if err := querier.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count exhausted files")
	}
	return count, nil
}
