package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/trustbox/internal/errors"
	filesDomain "github.com/allisson/trustbox/internal/files/domain"
)

func performHandleError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/", nil)

	HandleErrorGin(c, err, nil)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		errorCode  string
	}{
		{"file not found", filesDomain.ErrFileNotFound, http.StatusNotFound, "not_found"},
		{"link expired", filesDomain.ErrLinkExpired, http.StatusGone, "link_expired"},
		{"download limit", filesDomain.ErrDownloadLimitReached, http.StatusTooManyRequests, "download_limit_reached"},
		{"wrong passphrase", filesDomain.ErrWrongPassphrase, http.StatusBadRequest, "invalid_passphrase"},
		{"file too large", filesDomain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "payload_too_large"},
		{"invalid policy envelope", filesDomain.ErrInvalidPolicyEnvelope, http.StatusUnprocessableEntity, "invalid_input"},
		{"missing policy", filesDomain.ErrMissingPolicy, http.StatusUnprocessableEntity, "invalid_input"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"token space exhausted", filesDomain.ErrTokenSpaceExhausted, http.StatusInternalServerError, "internal_error"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := performHandleError(t, tt.err)
			assert.Equal(t, tt.statusCode, rec.Code)
			assert.Equal(t, tt.errorCode, body.Error)
		})
	}
}

func TestHandleErrorGin_InternalErrorHidesDetails(t *testing.T) {
	_, body := performHandleError(t, errors.New("pq: connection reset by peer"))
	assert.NotContains(t, body.Message, "pq:")
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/", nil)

	HandleBadRequestGin(c, errors.New("missing passphrase"), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing passphrase")
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/", nil)

	HandleValidationErrorGin(c, errors.New("expiration_date: must be in the future"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "expiration_date")
}
