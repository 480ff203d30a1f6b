package errors

import "errors"

// Codes shared by the domain packages and the HTTP transport.
const (
	CodeEmptyInput          = "empty_input"
	CodeInvalidInput        = "invalid_input"
	CodeNotFound            = "not_found"
	CodeServiceError        = "service_error"
	CodePermissionDenied    = "permission_denied"
	CodePositionUnavailable = "position_unavailable"
	CodeTimeout             = "timeout"
	CodeUnknownLocation     = "unknown_location"
	CodeUnsupported         = "unsupported"
	CodeSessionNotFound     = "session_not_found"
	CodeSessionError        = "session_error"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost AppError, or "" when there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// MessageOf returns the user facing message without the wrapped cause.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
