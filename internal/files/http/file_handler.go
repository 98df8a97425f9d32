// Package http provides HTTP handlers for the encrypted file lifecycle:
// passphrase-encrypted uploads and token-gated downloads.
package http

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/trustbox/internal/crypto/domain"
	filesDomain "github.com/allisson/trustbox/internal/files/domain"
	"github.com/allisson/trustbox/internal/files/http/dto"
	filesUseCase "github.com/allisson/trustbox/internal/files/usecase"
	"github.com/allisson/trustbox/internal/httputil"
	customValidation "github.com/allisson/trustbox/internal/validation"
)

// FileHandler handles HTTP requests for encrypted file operations.
type FileHandler struct {
	fileUseCase filesUseCase.FileUseCase
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler with required dependencies.
func NewFileHandler(fileUseCase filesUseCase.FileUseCase, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileUseCase: fileUseCase,
		logger:      logger,
	}
}

// UploadHandler stores a new passphrase-encrypted file.
// POST /v1/files - multipart form with exactly one of "file" or "text".
// Returns 201 Created with the download token; the token is shown once and
// cannot be recovered afterwards.
func (h *FileHandler) UploadHandler(c *gin.Context) {
	var req dto.UploadFileRequest

	if err := c.ShouldBind(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	name, payload, err := h.extractPayload(c)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	output, err := h.fileUseCase.Create(c.Request.Context(), filesDomain.CreateFileInput{
		Name:           name,
		Payload:        payload,
		Passphrase:     req.Passphrase,
		MaxDownloads:   req.MaxDownloads,
		ExpirationDate: req.ExpirationDate,
		PolicyEnvelope: req.Policy,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapFileToUploadResponse(output))
}

// extractPayload reads the upload payload from the multipart form. Exactly
// one of the "file" part or the "text" field must be present.
func (h *FileHandler) extractPayload(c *gin.Context) (string, []byte, error) {
	text, hasText := c.GetPostForm("text")

	fileHeader, err := c.FormFile("file")
	hasFile := err == nil

	if hasFile == hasText {
		return "", nil, filesDomain.ErrExactlyOnePayload
	}

	if hasText {
		return "", []byte(text), nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	// Read one byte past the raw ceiling so the use case can refuse
	// oversized bodies without the handler buffering them whole.
	payload, err := io.ReadAll(io.LimitReader(src, filesDomain.MaxRawUploadSize+1))
	if err != nil {
		return "", nil, err
	}

	// Strip any client-supplied directory components.
	return filepath.Base(fileHeader.Filename), payload, nil
}

// DownloadHandler retrieves and decrypts a file by its download token.
// GET /v1/files/:token?passphrase=...
// Returns 200 OK with the decrypted payload as an attachment. The download
// is accounted atomically; a wrong passphrase never consumes a download.
func (h *FileHandler) DownloadHandler(c *gin.Context) {
	var req dto.DownloadFileRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Issued tokens are raw URL-safe base64; anything outside that
	// alphabet can never resolve to a stored digest, so refuse it without
	// touching the repository.
	token := c.Param("token")
	if err := validation.Validate(token, validation.Required, customValidation.RawURLBase64); err != nil {
		httputil.HandleErrorGin(c, filesDomain.ErrFileNotFound, h.logger)
		return
	}

	file, err := h.fileUseCase.Retrieve(c.Request.Context(), token, req.Passphrase)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer cryptoDomain.Zero(file.Plaintext)

	c.Header("Content-Disposition", httputil.ContentDisposition(file.Name))
	c.Data(http.StatusOK, "application/octet-stream", file.Plaintext)
}
