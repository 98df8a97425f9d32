// Package mocks provides mock implementations for testing use cases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

// MockFileRepository is a mock implementation of FileRepository for testing.
type MockFileRepository struct {
	mock.Mock
}

// Create mocks the Create method of FileRepository.
func (m *MockFileRepository) Create(ctx context.Context, file *filesDomain.EncryptedFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

// GetByTokenDigest mocks the GetByTokenDigest method of FileRepository.
func (m *MockFileRepository) GetByTokenDigest(
	ctx context.Context,
	digest string,
) (*filesDomain.EncryptedFile, error) {
	args := m.Called(ctx, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filesDomain.EncryptedFile), args.Error(1)
}

// RegisterDownload mocks the RegisterDownload method of FileRepository.
func (m *MockFileRepository) RegisterDownload(
	ctx context.Context,
	fileID uuid.UUID,
	now time.Time,
) (bool, error) {
	args := m.Called(ctx, fileID, now)
	return args.Bool(0), args.Error(1)
}

// DeleteExpiredBatch mocks the DeleteExpiredBatch method of FileRepository.
func (m *MockFileRepository) DeleteExpiredBatch(
	ctx context.Context,
	now time.Time,
	limit int,
) (int64, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).(int64), args.Error(1)
}

// DeleteExhaustedBatch mocks the DeleteExhaustedBatch method of FileRepository.
func (m *MockFileRepository) DeleteExhaustedBatch(ctx context.Context, limit int) (int64, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).(int64), args.Error(1)
}

// CountExpired mocks the CountExpired method of FileRepository.
func (m *MockFileRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// CountExhausted mocks the CountExhausted method of FileRepository.
func (m *MockFileRepository) CountExhausted(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
