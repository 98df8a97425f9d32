package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/trustbox/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("nil error passes through", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("wraps as invalid input", func(t *testing.T) {
		err := WrapValidationError(assert.AnError)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Contains(t, err.Error(), assert.AnError.Error())
	})
}

func TestBase64(t *testing.T) {
	assert.NoError(t, Base64.Validate("ZW52ZWxvcGU="))
	assert.NoError(t, Base64.Validate(""))
	assert.Error(t, Base64.Validate("not base64!!"))
	assert.Error(t, Base64.Validate(42))
}

func TestRawURLBase64(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{"valid raw url base64", "ZW52ZWxvcGU", false},
		{"empty string skipped", "", false},
		{"standard padding rejected", "ZW52ZWxvcGU=", true},
		{"invalid characters", "not base64!!", true},
		{"not a string", 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RawURLBase64.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPositiveInt(t *testing.T) {
	one := 1
	zero := 0
	negative := -3

	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{"positive", one, false},
		{"positive pointer", &one, false},
		{"zero rejected", zero, true},
		{"zero pointer rejected", &zero, true},
		{"negative rejected", &negative, true},
		{"nil pointer skipped", (*int)(nil), false},
		{"not an integer", "5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PositiveInt.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFutureTime(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name    string
		value   interface{}
		wantErr bool
	}{
		{"future time", future, false},
		{"past time", past, true},
		{"future pointer", &future, false},
		{"past pointer", &past, true},
		{"nil pointer skipped", (*time.Time)(nil), false},
		{"zero time skipped", time.Time{}, false},
		{"not a time", "2026-01-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FutureTime.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
