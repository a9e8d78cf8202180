package errors

import "fmt"

// ErrorType classifies an AppError at a coarser grain than ErrorCode, for
// callers that only need to branch on category (e.g. IsNotFound and
// IsValidationError in helpers.go).
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConfig     ErrorType = "CONFIG_ERROR"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

// AppError is the application-level error shape used anywhere outside the
// kernel package that needs to carry a code/message/details triple —
// principally backend/pkg/validation, which never imports the kernel
// package directly to avoid a dependency cycle.
type AppError struct {
	Type     ErrorType
	Message  string
	Code     ErrorCode
	Details  map[string]interface{}
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithInternal(err error) *AppError {
	e.Internal = err
	return e
}

// NewValidationError builds a VALIDATION_FAILED AppError.
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: ErrCodeValidationFailed, Message: message}
}

// NewNotFoundError builds an ENTITY_NOT_FOUND AppError for the named
// resource.
func NewNotFoundError(resource string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Code: ErrCodeEntityNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// NewConfigError builds a RULE_CONFIG AppError.
func NewConfigError(message string) *AppError {
	return &AppError{Type: ErrorTypeConfig, Code: ErrCodeRuleConfig, Message: message}
}

// NewInternalError builds an INTERNAL_ERROR AppError wrapping a cause.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Internal: err}
}

// IsAppError reports whether err is an *AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError coerces err into an *AppError, wrapping it as an internal
// error if it isn't already one.
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError("an unexpected error occurred", err)
}

// ValidationErrors aggregates per-field validation failures, e.g. from a
// single go-playground/validator pass over a command's Parameters struct.
type ValidationErrors struct {
	Errors map[string][]string
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation errors"
	}

	var messages []string
	for field, errs := range v.Errors {
		for _, err := range errs {
			messages = append(messages, fmt.Sprintf("%s: %s", field, err))
		}
	}

	if len(messages) == 1 {
		return messages[0]
	}
	return fmt.Sprintf("validation errors: %v", messages)
}

func (v *ValidationErrors) Add(field, message string) {
	if v.Errors == nil {
		v.Errors = make(map[string][]string)
	}
	v.Errors[field] = append(v.Errors[field], message)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToAppError converts the aggregated field errors into a single
// VALIDATION_FAILED AppError with one detail entry per field, or nil if
// there were no errors.
func (v *ValidationErrors) ToAppError() *AppError {
	if !v.HasErrors() {
		return nil
	}

	details := make(map[string]interface{})
	for field, messages := range v.Errors {
		details[field] = messages
	}

	return NewValidationError("validation failed").WithDetails(details)
}
