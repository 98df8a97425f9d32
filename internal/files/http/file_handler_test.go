package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	filesDomain "github.com/allisson/trustbox/internal/files/domain"
	"github.com/allisson/trustbox/internal/files/http/dto"
	usecaseMocks "github.com/allisson/trustbox/internal/files/usecase/mocks"
)

// setupTestRouter creates a gin router wired to a handler with a mocked use case.
func setupTestRouter(t *testing.T) (*gin.Engine, *usecaseMocks.MockFileUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &usecaseMocks.MockFileUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewFileHandler(mockUseCase, logger)

	router := gin.New()
	router.POST("/v1/files", handler.UploadHandler)
	router.GET("/v1/files/:token", handler.DownloadHandler)

	return router, mockUseCase
}

// multipartBody builds a multipart form with the given scalar fields and an
// optional file part.
func multipartBody(t *testing.T, fields map[string]string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func uploadFields() map[string]string {
	return map[string]string{
		"passphrase":      "correct horse battery staple",
		"max_downloads":   "3",
		"expiration_date": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	}
}

func TestFileHandler_UploadHandler(t *testing.T) {
	t.Run("Success_FileUpload", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		now := time.Now().UTC()
		output := &filesDomain.CreateFileOutput{
			File: &filesDomain.EncryptedFile{
				ID:             uuid.Must(uuid.NewV7()),
				Name:           "report.pdf",
				MaxDownloads:   3,
				ExpirationDate: now.Add(24 * time.Hour),
				CreatedAt:      now,
			},
			Token: "plain-token",
		}
		mockUseCase.On("Create", mock.Anything, mock.MatchedBy(func(input filesDomain.CreateFileInput) bool {
			return input.Name == "report.pdf" &&
				string(input.Payload) == "file-content" &&
				input.Passphrase == "correct horse battery staple" &&
				input.MaxDownloads != nil && *input.MaxDownloads == 3
		})).Return(output, nil)

		body, contentType := multipartBody(t, uploadFields(), "report.pdf", []byte("file-content"))
		req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.UploadFileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "plain-token", response.Token)
		assert.Equal(t, "report.pdf", response.Name)
		assert.Equal(t, 3, response.MaxDownloads)
	})

	t.Run("Success_InlineTextUpload", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		output := &filesDomain.CreateFileOutput{
			File:  &filesDomain.EncryptedFile{Name: filesDomain.InlineTextName},
			Token: "plain-token",
		}
		mockUseCase.On("Create", mock.Anything, mock.MatchedBy(func(input filesDomain.CreateFileInput) bool {
			return input.Name == "" && string(input.Payload) == "a short secret note"
		})).Return(output, nil)

		fields := uploadFields()
		fields["text"] = "a short secret note"
		body, contentType := multipartBody(t, fields, "", nil)
		req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Error_BothFileAndText", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		fields := uploadFields()
		fields["text"] = "note"
		body, contentType := multipartBody(t, fields, "report.pdf", []byte("content"))
		req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_NeitherFileNorText", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		body, contentType := multipartBody(t, uploadFields(), "", nil)
		req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MissingPassphrase", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		fields := uploadFields()
		delete(fields, "passphrase")
		body, contentType := multipartBody(t, fields, "report.pdf", []byte("content"))
		req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_PastExpirationDate", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		fields := uploadFields()
		fields["expiration_date"] = time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
		body, contentType := multipartBody(t, fields, "report.pdf", []byte("content"))
		req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MissingPolicy", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, filesDomain.ErrMissingPolicy)

		fields := map[string]string{"passphrase": "secret"}
		body, contentType := multipartBody(t, fields, "report.pdf", []byte("content"))
		req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_FileTooLarge", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, filesDomain.ErrFileTooLarge)

		body, contentType := multipartBody(t, uploadFields(), "big.bin", []byte("content"))
		req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("Error_TokenSpaceExhaustedIsInternal", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, filesDomain.ErrTokenSpaceExhausted)

		body, contentType := multipartBody(t, uploadFields(), "report.pdf", []byte("content"))
		req := httptest.NewRequest(http.MethodPost, "/v1/files", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestFileHandler_DownloadHandler(t *testing.T) {
	t.Run("Success_Download", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		file := &filesDomain.EncryptedFile{
			Name:      "résumé.pdf",
			Plaintext: []byte("decrypted-content"),
		}
		mockUseCase.On("Retrieve", mock.Anything, "plain-token", "secret").Return(file, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/files/plain-token?passphrase=secret", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "decrypted-content", w.Body.String())
		assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="resume.pdf"`)
	})

	t.Run("Error_MissingPassphrase", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/files/plain-token", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_TokenOutsideIssuingAlphabet", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/files/bad!token?passphrase=secret", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		mockUseCase.On("Retrieve", mock.Anything, "unknown", "secret").
			Return(nil, filesDomain.ErrFileNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/files/unknown?passphrase=secret", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		mockUseCase.On("Retrieve", mock.Anything, "plain-token", "secret").
			Return(nil, filesDomain.ErrLinkExpired)

		req := httptest.NewRequest(http.MethodGet, "/v1/files/plain-token?passphrase=secret", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusGone, w.Code)
	})

	t.Run("Error_LimitReached", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		mockUseCase.On("Retrieve", mock.Anything, "plain-token", "secret").
			Return(nil, filesDomain.ErrDownloadLimitReached)

		req := httptest.NewRequest(http.MethodGet, "/v1/files/plain-token?passphrase=secret", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("Error_WrongPassphrase", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t)

		mockUseCase.On("Retrieve", mock.Anything, "plain-token", "wrong").
			Return(nil, filesDomain.ErrWrongPassphrase)

		req := httptest.NewRequest(http.MethodGet, "/v1/files/plain-token?passphrase=wrong", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_passphrase")
	})
}
