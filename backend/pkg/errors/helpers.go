package errors

import "strings"

// IsNotFound reports whether err represents an ENTITY_NOT_FOUND condition.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeNotFound
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// IsValidationError reports whether err represents a VALIDATION_FAILED
// condition, either as a single AppError or an aggregated ValidationErrors.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == ErrorTypeValidation
	}
	_, ok := err.(*ValidationErrors)
	return ok
}

// Wrap adds message as a prefix to err, preserving AppError typing when
// present.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		appErr.Message = message + ": " + appErr.Message
		return appErr
	}
	return NewInternalError(message, err)
}

// Cause returns the innermost error wrapped by an AppError, or err itself
// if it isn't one.
func Cause(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok && appErr.Internal != nil {
		return appErr.Internal
	}
	return err
}
