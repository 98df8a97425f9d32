// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/trustbox/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// RawURLBase64 validates that a string is valid URL-safe base64 data without
// padding, the alphabet download tokens are issued in.
var RawURLBase64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := base64.RawURLEncoding.DecodeString(s); err != nil {
		return validation.NewError("validation_base64", "must be valid URL-safe base64-encoded data")
	}
	return nil
})

// PositiveInt validates that an optional integer, when present, is at
// least 1. Threshold rules treat a zero value as absent and skip it, so a
// client-sent 0 would slip through them; here only a nil pointer counts
// as absent.
var PositiveInt = validation.By(func(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil // Let Required handle missing values
	}
	n, ok := v.(int)
	if !ok {
		return validation.NewError("validation_positive_int_type", "must be an integer")
	}
	if n < 1 {
		return validation.NewError("validation_positive_int", "must be no less than 1")
	}
	return nil
})

// FutureTime validates that a time value lies in the future. A boundary
// value equal to the current instant is rejected since it would be expired
// on arrival.
var FutureTime = validation.By(func(value interface{}) error {
	t, ok := value.(time.Time)
	if !ok {
		if p, isPtr := value.(*time.Time); isPtr {
			if p == nil {
				return nil // Let Required handle missing values
			}
			t = *p
		} else {
			return validation.NewError("validation_future_time_type", "must be a timestamp")
		}
	}
	if t.IsZero() {
		return nil
	}
	if !t.After(time.Now()) {
		return validation.NewError("validation_future_time", "must be in the future")
	}
	return nil
})
