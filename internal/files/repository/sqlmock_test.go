package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lib/pq"
)

// Driver failures are exercised with sqlmock since the live databases
// cannot be made to fail on demand.

func TestPostgreSQLFileRepository_Create_UniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO encrypted_files").
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	repo := NewPostgreSQLFileRepository(db)
	file := newTestFile(t, time.Now().Add(time.Hour), 3)

	err = repo.Create(context.Background(), file)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token digest already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLFileRepository_Create_DriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO encrypted_files").
		WillReturnError(errors.New("connection reset"))

	repo := NewPostgreSQLFileRepository(db)
	file := newTestFile(t, time.Now().Add(time.Hour), 3)

	err = repo.Create(context.Background(), file)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create encrypted file")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLFileRepository_RegisterDownload_DriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE encrypted_files").
		WillReturnError(errors.New("connection reset"))

	repo := NewPostgreSQLFileRepository(db)
	file := newTestFile(t, time.Now().Add(time.Hour), 3)

	ok, err := repo.RegisterDownload(context.Background(), file.ID, time.Now())
	assert.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLFileRepository_DeleteExpiredBatch_DriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM encrypted_files").
		WillReturnError(errors.New("connection reset"))

	repo := NewPostgreSQLFileRepository(db)

	deleted, err := repo.DeleteExpiredBatch(context.Background(), time.Now(), 500)
	assert.Error(t, err)
	assert.Zero(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
