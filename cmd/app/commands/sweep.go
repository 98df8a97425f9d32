package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/trustbox/internal/files/http/dto"
	filesUseCase "github.com/allisson/trustbox/internal/files/usecase"
)

// RunSweep deletes expired and download-exhausted files in batches.
// Supports dry-run mode to preview deletion counts and both text/JSON output
// formats.
//
// Requirements: Database must be migrated and accessible.
func RunSweep(
	ctx context.Context,
	fileUseCase filesUseCase.FileUseCase,
	logger *slog.Logger,
	out io.Writer,
	dryRun bool,
	format string,
) error {
	logger.Info("sweeping files", slog.Bool("dry_run", dryRun))

	report, err := fileUseCase.Sweep(ctx, dryRun)
	if err != nil {
		return fmt.Errorf("failed to sweep files: %w", err)
	}

	if format == "json" {
		if err := outputSweepJSON(out, report.Expired, report.Exhausted, dryRun); err != nil {
			return err
		}
	} else {
		outputSweepText(out, report.Expired, report.Exhausted, dryRun)
	}

	logger.Info("sweep completed",
		slog.Int64("expired", report.Expired),
		slog.Int64("exhausted", report.Exhausted),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputSweepText outputs the result in human-readable text format.
func outputSweepText(out io.Writer, expired, exhausted int64, dryRun bool) {
	if dryRun {
		fmt.Fprintf(out, "Dry-run mode: Would delete %d expired and %d download-exhausted file(s)\n", expired, exhausted)
	} else {
		fmt.Fprintf(out, "Successfully deleted %d expired and %d download-exhausted file(s)\n", expired, exhausted)
	}
}

// outputSweepJSON outputs the result in JSON format for machine consumption.
func outputSweepJSON(out io.Writer, expired, exhausted int64, dryRun bool) error {
	result := dto.SweepResponse{
		ExpiredDeleted:   expired,
		ExhaustedDeleted: exhausted,
		DryRun:           dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(out, string(jsonBytes))
	return nil
}
