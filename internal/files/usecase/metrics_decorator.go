package usecase

import (
	"context"
	"time"

	filesDomain "github.com/allisson/trustbox/internal/files/domain"
	"github.com/allisson/trustbox/internal/metrics"
)

// fileUseCaseWithMetrics decorates FileUseCase with metrics instrumentation.
type fileUseCaseWithMetrics struct {
	next    FileUseCase
	metrics metrics.BusinessMetrics
}

// NewFileUseCaseWithMetrics wraps a FileUseCase with metrics recording.
func NewFileUseCaseWithMetrics(useCase FileUseCase, m metrics.BusinessMetrics) FileUseCase {
	return &fileUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for upload operations.
func (f *fileUseCaseWithMetrics) Create(
	ctx context.Context,
	input filesDomain.CreateFileInput,
) (*filesDomain.CreateFileOutput, error) {
	start := time.Now()
	output, err := f.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "files", "file_create", status)
	f.metrics.RecordDuration(ctx, "files", "file_create", time.Since(start), status)

	return output, err
}

// Retrieve records metrics for download operations.
func (f *fileUseCaseWithMetrics) Retrieve(
	ctx context.Context,
	token, passphrase string,
) (*filesDomain.EncryptedFile, error) {
	start := time.Now()
	file, err := f.next.Retrieve(ctx, token, passphrase)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "files", "file_retrieve", status)
	f.metrics.RecordDuration(ctx, "files", "file_retrieve", time.Since(start), status)

	return file, err
}

// Sweep records metrics for reclamation sweep runs, including per-reason
// deleted row counts.
func (f *fileUseCaseWithMetrics) Sweep(ctx context.Context, dryRun bool) (*filesDomain.SweepReport, error) {
	start := time.Now()
	report, err := f.next.Sweep(ctx, dryRun)

	status := "success"
	if err != nil {
		status = "error"
	}

	f.metrics.RecordOperation(ctx, "files", "sweep", status)
	f.metrics.RecordDuration(ctx, "files", "sweep", time.Since(start), status)

	if report != nil && !report.DryRun {
		f.metrics.RecordReclaimed(ctx, "expired", report.Expired)
		f.metrics.RecordReclaimed(ctx, "exhausted", report.Exhausted)
	}

	return report, err
}
