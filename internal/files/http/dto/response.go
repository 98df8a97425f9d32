// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

// UploadFileResponse is returned after a successful upload. The token is
// the only copy the service ever hands out; it cannot be recovered later.
type UploadFileResponse struct {
	Token          string    `json:"download_token"`
	Name           string    `json:"name"`
	MaxDownloads   int       `json:"max_downloads"`
	ExpirationDate time.Time `json:"expiration_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// MapFileToUploadResponse converts an upload result to an API response.
func MapFileToUploadResponse(output *filesDomain.CreateFileOutput) UploadFileResponse {
	return UploadFileResponse{
		Token:          output.Token,
		Name:           output.File.Name,
		MaxDownloads:   output.File.MaxDownloads,
		ExpirationDate: output.File.ExpirationDate,
		CreatedAt:      output.File.CreatedAt,
	}
}

// SweepResponse reports the outcome of a reclamation sweep.
type SweepResponse struct {
	ExpiredDeleted   int64 `json:"expired_deleted"`
	ExhaustedDeleted int64 `json:"exhausted_deleted"`
	DryRun           bool  `json:"dry_run"`
}

// MapSweepReportToResponse converts a sweep report to an API response.
func MapSweepReportToResponse(report *filesDomain.SweepReport) SweepResponse {
	return SweepResponse{
		ExpiredDeleted:   report.Expired,
		ExhaustedDeleted: report.Exhausted,
		DryRun:           report.DryRun,
	}
}
