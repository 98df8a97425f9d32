package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

// MockFileUseCase is a mock implementation of FileUseCase for testing.
type MockFileUseCase struct {
	mock.Mock
}

// Create mocks the Create method of FileUseCase.
func (m *MockFileUseCase) Create(
	ctx context.Context,
	input filesDomain.CreateFileInput,
) (*filesDomain.CreateFileOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filesDomain.CreateFileOutput), args.Error(1)
}

// Retrieve mocks the Retrieve method of FileUseCase.
func (m *MockFileUseCase) Retrieve(
	ctx context.Context,
	token, passphrase string,
) (*filesDomain.EncryptedFile, error) {
	args := m.Called(ctx, token, passphrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filesDomain.EncryptedFile), args.Error(1)
}

// Sweep mocks the Sweep method of FileUseCase.
func (m *MockFileUseCase) Sweep(ctx context.Context, dryRun bool) (*filesDomain.SweepReport, error) {
	args := m.Called(ctx, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filesDomain.SweepReport), args.Error(1)
}
