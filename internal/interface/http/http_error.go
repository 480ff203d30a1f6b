package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/skycast/pkg/errors"
)

const (
	codeInternal    = "internal_error"
	messageInternal = "the weather service failed unexpectedly"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// toHTTPError maps domain error codes onto response statuses. Errors without
// a code become a 500 that hides the cause.
func toHTTPError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	switch code {
	case apperrors.CodeEmptyInput, apperrors.CodeInvalidInput, apperrors.CodePositionUnavailable:
		return NewHTTPError(http.StatusBadRequest, code, apperrors.MessageOf(err), err)
	case apperrors.CodeNotFound, apperrors.CodeSessionNotFound:
		return NewHTTPError(http.StatusNotFound, code, apperrors.MessageOf(err), err)
	case apperrors.CodeServiceError:
		return NewHTTPError(http.StatusBadGateway, code, apperrors.MessageOf(err), err)
	case "":
		return NewHTTPError(http.StatusInternalServerError, codeInternal, messageInternal, err)
	default:
		return NewHTTPError(http.StatusInternalServerError, code, apperrors.MessageOf(err), err)
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return toHTTPError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
