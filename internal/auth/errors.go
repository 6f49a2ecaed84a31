package auth

import "errors"

var (
	// ErrUserNotFound is returned when a user is not configured.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")
)
