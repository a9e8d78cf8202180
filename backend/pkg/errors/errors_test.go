package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid input")

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, ErrCodeValidationFailed, err.Code)
	assert.Nil(t, err.Internal)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("character:hero-1")

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "character:hero-1 not found", err.Message)
	assert.Equal(t, ErrCodeEntityNotFound, err.Code)
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("unknown prerequisite")

	assert.Equal(t, ErrorTypeConfig, err.Type)
	assert.Equal(t, ErrCodeRuleConfig, err.Code)
}

func TestNewInternalError(t *testing.T) {
	originalErr := assert.AnError
	err := NewInternalError("something went wrong", originalErr)

	assert.Equal(t, ErrorTypeInternal, err.Type)
	assert.Equal(t, "something went wrong", err.Message)
	assert.Equal(t, originalErr, err.Internal)
}

func TestAppError_WithDetails(t *testing.T) {
	err := NewValidationError("validation failed")
	details := map[string]interface{}{"field": "name", "reason": "too short"}

	err.WithDetails(details)

	assert.Equal(t, details, err.Details)
}

func TestAppError_WithInternal(t *testing.T) {
	err := NewValidationError("bad request")
	internalErr := assert.AnError

	err.WithInternal(internalErr)

	assert.Equal(t, internalErr, err.Internal)
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without internal error",
			err:      NewValidationError("invalid notation"),
			expected: "VALIDATION_ERROR: invalid notation",
		},
		{
			name:     "with internal error",
			err:      NewInternalError("engine error", assert.AnError),
			expected: "INTERNAL_ERROR: engine error (internal: assert.AnError general error for testing)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsAppError(t *testing.T) {
	appErr := NewValidationError("test")
	normalErr := assert.AnError

	assert.True(t, IsAppError(appErr))
	assert.False(t, IsAppError(normalErr))
}

func TestGetAppError(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected *AppError
	}{
		{
			name:     "app error input",
			input:    NewValidationError("test"),
			expected: NewValidationError("test"),
		},
		{
			name:  "normal error input",
			input: assert.AnError,
			expected: &AppError{
				Type:     ErrorTypeInternal,
				Message:  "an unexpected error occurred",
				Internal: assert.AnError,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetAppError(tt.input)
			assert.Equal(t, tt.expected.Type, result.Type)
			assert.Equal(t, tt.expected.Message, result.Message)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	ve := &ValidationErrors{}

	ve.Add("name", "is required")
	ve.Add("name", "must be alphanumeric")
	ve.Add("level", "is too low")

	assert.True(t, ve.HasErrors())
	assert.Len(t, ve.Errors, 2)
	assert.Len(t, ve.Errors["name"], 2)
	assert.Len(t, ve.Errors["level"], 1)

	errStr := ve.Error()
	assert.Contains(t, errStr, "name")
	assert.Contains(t, errStr, "level")
}

func TestValidationErrors_ToAppError(t *testing.T) {
	ve := &ValidationErrors{}

	assert.Nil(t, ve.ToAppError())

	ve.Add("name", "is required")
	ve.Add("level", "must be positive")

	appErr := ve.ToAppError()
	require.NotNil(t, appErr)

	assert.Equal(t, ErrorTypeValidation, appErr.Type)
	assert.Equal(t, ErrCodeValidationFailed, appErr.Code)
	assert.NotNil(t, appErr.Details)

	nameErrors, ok := appErr.Details["name"].([]string)
	require.True(t, ok)
	assert.Contains(t, nameErrors, "is required")
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrCodeValidationFailed, "validation failed"},
		{ErrCodeEntityNotFound, "entity not found"},
		{ErrCodeRuleException, "rule raised an exception"},
		{ErrorCode("UNKNOWN"), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorMessage(tt.code))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsNotFound(NewNotFoundError("character:hero-1")))
	assert.False(t, IsNotFound(assert.AnError))
}

func TestWrapPreservesAppErrorType(t *testing.T) {
	original := NewValidationError("bad field")
	wrapped := Wrap(original, "while parsing command")

	appErr, ok := wrapped.(*AppError)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Message, "while parsing command")
}

func TestCauseUnwrapsInternal(t *testing.T) {
	inner := assert.AnError
	wrapped := NewInternalError("outer", inner)
	assert.Equal(t, inner, Cause(wrapped))
	assert.Equal(t, inner, Cause(inner))
}
