package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	filesDomain "github.com/allisson/trustbox/internal/files/domain"
	usecaseMocks "github.com/allisson/trustbox/internal/files/usecase/mocks"
	"github.com/allisson/trustbox/internal/metrics"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordReclaimed(ctx context.Context, reason string, count int64) {
	m.Called(ctx, reason, count)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestMetricsDecorator_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockFileUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := validCreateInput()
		mockUseCase.On("Create", ctx, input).
			Return(&filesDomain.CreateFileOutput{Token: "plain-token"}, nil)
		mockMetrics.On("RecordOperation", ctx, "files", "file_create", "success")
		mockMetrics.On("RecordDuration", ctx, "files", "file_create", mock.AnythingOfType("time.Duration"), "success")

		decorator := NewFileUseCaseWithMetrics(mockUseCase, mockMetrics)
		output, err := decorator.Create(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, "plain-token", output.Token)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockFileUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		input := validCreateInput()
		mockUseCase.On("Create", ctx, input).Return(nil, errors.New("boom"))
		mockMetrics.On("RecordOperation", ctx, "files", "file_create", "error")
		mockMetrics.On("RecordDuration", ctx, "files", "file_create", mock.AnythingOfType("time.Duration"), "error")

		decorator := NewFileUseCaseWithMetrics(mockUseCase, mockMetrics)
		_, err := decorator.Create(ctx, input)

		assert.Error(t, err)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Retrieve(t *testing.T) {
	ctx := context.Background()

	mockUseCase := &usecaseMocks.MockFileUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	file := retrievableFile(3, 1, time.Now().Add(time.Hour))
	mockUseCase.On("Retrieve", ctx, "plain-token", "passphrase").Return(file, nil)
	mockMetrics.On("RecordOperation", ctx, "files", "file_retrieve", "success")
	mockMetrics.On("RecordDuration", ctx, "files", "file_retrieve", mock.AnythingOfType("time.Duration"), "success")

	decorator := NewFileUseCaseWithMetrics(mockUseCase, mockMetrics)
	got, err := decorator.Retrieve(ctx, "plain-token", "passphrase")

	assert.NoError(t, err)
	assert.Equal(t, file, got)
	mockMetrics.AssertExpectations(t)
}

func TestMetricsDecorator_Sweep(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsReclaimedCounts", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockFileUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Sweep", ctx, false).
			Return(&filesDomain.SweepReport{Expired: 7, Exhausted: 3}, nil)
		mockMetrics.On("RecordOperation", ctx, "files", "sweep", "success")
		mockMetrics.On("RecordDuration", ctx, "files", "sweep", mock.AnythingOfType("time.Duration"), "success")
		mockMetrics.On("RecordReclaimed", ctx, "expired", int64(7))
		mockMetrics.On("RecordReclaimed", ctx, "exhausted", int64(3))

		decorator := NewFileUseCaseWithMetrics(mockUseCase, mockMetrics)
		report, err := decorator.Sweep(ctx, false)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), report.Expired)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Success_DryRunSkipsReclaimedCounters", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockFileUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Sweep", ctx, true).
			Return(&filesDomain.SweepReport{Expired: 7, Exhausted: 3, DryRun: true}, nil)
		mockMetrics.On("RecordOperation", ctx, "files", "sweep", "success")
		mockMetrics.On("RecordDuration", ctx, "files", "sweep", mock.AnythingOfType("time.Duration"), "success")

		decorator := NewFileUseCaseWithMetrics(mockUseCase, mockMetrics)
		_, err := decorator.Sweep(ctx, true)

		assert.NoError(t, err)
		mockMetrics.AssertNotCalled(t, "RecordReclaimed", mock.Anything, mock.Anything, mock.Anything)
	})
}
