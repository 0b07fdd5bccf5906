package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both unknown login IDs and wrong
	// passwords so responses don't reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrInvalidRefresh means the refresh token failed verification or
	// its subject no longer exists. The client must log in again.
	ErrInvalidRefresh = errors.New("invalid_refresh_token")

	// ErrDuplicateAccount means the email or phone is already registered.
	ErrDuplicateAccount = errors.New("account_already_exists")
)

// ValidationError reports a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
