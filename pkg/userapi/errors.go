package userapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/premmsharma122/user-management-system/pkg/httpx"
)

// Error codes shared between server responses and SDK errors.
const (
	ErrorCodeMissingCredential = "missing_credential"
	ErrorCodeInvalidCredential = "invalid_credential"
	ErrorCodeForbidden         = "forbidden"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeConflict          = "conflict"
	ErrorCodeValidation        = "validation_error"
	ErrorCodeServerError       = "server_error"
)

// Error is the service's wire-level error. It implements the error
// interface and is used both by the server (to write HTTP responses)
// and by the SDK client (to represent responses it got back).
type Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "invalid_credential")
	Code string `json:"error"`

	// Message is a human-readable description of the error
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is makes errors.Is match on the code, so a parsed response error
// matches the predefined value with the same code.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WriteError writes this Error to an HTTP response writer. Used by the
// server's handlers to return taxonomy-conforming responses.
func (e *Error) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// Predefined errors. Handlers reuse these; bespoke messages use the
// constructor helpers below.
var (
	// ErrMissingCredential is returned when a credential is absent
	// entirely (no bearer header, no refresh token in the body).
	ErrMissingCredential = &Error{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeMissingCredential,
		Message:    "credential is required",
	}

	// ErrInvalidCredential is returned when login credentials are wrong
	// or a presented access token fails verification.
	ErrInvalidCredential = &Error{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredential,
		Message:    "invalid credentials",
	}

	// ErrRefreshRejected is returned by the refresh endpoint when the
	// presented refresh token fails verification or its subject is
	// gone. 403 rather than 401: the client had a credential, it just
	// wasn't good enough, and retrying without a fresh login is futile.
	ErrRefreshRejected = &Error{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeInvalidCredential,
		Message:    "refresh token rejected",
	}

	// ErrForbidden is returned when the caller is authenticated but not
	// allowed to perform the operation.
	ErrForbidden = &Error{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "insufficient permissions",
	}

	// ErrNotFound is returned when the requested user does not exist.
	ErrNotFound = &Error{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "user not found",
	}

	// ErrConflict is returned when a registration or update collides
	// with an existing email or phone.
	ErrConflict = &Error{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Message:    "an account with this email or phone already exists",
	}

	// ErrServer is the generic 500.
	ErrServer = &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// NewValidationError builds a 400 with a field-specific message.
func NewValidationError(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeValidation,
		Message:    message,
	}
}

// ErrSessionExpired is returned by Session operations when the refresh
// path fails: the persisted session has been cleared and the user must
// log in again.
var ErrSessionExpired = errors.New("userapi: session expired, log in again")

// parseErrorResponse turns a non-2xx response body into a typed *Error.
// Bodies that don't carry the envelope fall back to a status-derived error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr Error
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}
	return &Error{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("unexpected response status %d", resp.StatusCode),
	}
}
