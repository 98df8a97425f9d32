// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/trustbox/internal/validation"
)

// UploadFileRequest contains the multipart form fields of an upload. The
// payload itself (file part or inline text) is handled by the handler; this
// DTO covers the scalar fields.
type UploadFileRequest struct {
	Passphrase     string     `form:"passphrase"`
	MaxDownloads   *int       `form:"max_downloads"`
	ExpirationDate *time.Time `form:"expiration_date" time_format:"2006-01-02T15:04:05Z07:00"`
	// Policy is the optional encrypted policy envelope; its fields override
	// max_downloads and expiration_date.
	Policy string `form:"policy"`
}

// Validate checks if the upload request is valid. Policy completeness
// (download budget and expiration present after envelope merging) is
// enforced by the use case; here only the individual fields are checked.
func (r *UploadFileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Passphrase,
			validation.Required,
			validation.Length(1, 1024),
		),
		validation.Field(&r.MaxDownloads,
			customValidation.PositiveInt,
		),
		validation.Field(&r.ExpirationDate,
			customValidation.FutureTime,
		),
		validation.Field(&r.Policy,
			customValidation.Base64,
		),
	)
}

// DownloadFileRequest contains the query parameters of a download.
type DownloadFileRequest struct {
	Passphrase string `form:"passphrase"`
}

// Validate checks if the download request is valid.
func (r *DownloadFileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Passphrase,
			validation.Required,
			validation.Length(1, 1024),
		),
	)
}
