package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"footchat/internal/pkg/logx"
)

// CustomError carries a business error code, a user-facing message and the
// HTTP status the REST layer should respond with.
type CustomError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the user-facing error description.
	Message string

	// Status is the HTTP status code for REST responses.
	Status int
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError from a catalog code. Optional details are
// printf arguments for messages containing format placeholders. An unknown
// code falls back to ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			errors.New("unknown error code requested"),
			"errs.NewError called with a code missing from the catalog",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &CustomError{
			Code:    unknownErr.Code,
			Message: unknownErr.Message,
			Status:  unknownErr.Status,
		}
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusBadRequest
	}

	if len(details) > 0 && strings.Contains(customErr.Message, "%") {
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	}

	return &customErr
}

// CodeOf extracts the business code from an error, or ErrUnknown when the
// error is not a *CustomError.
func CodeOf(err error) int {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	return ErrUnknown
}

// AsCustom converts any error to a *CustomError, wrapping unclassified errors
// as ErrUnknown so callers always have a code, message and status to report.
func AsCustom(err error) *CustomError {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr
	}
	return NewError(ErrUnknown)
}
