package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotVerified    = errors.New("user is not verified")
	ErrInvalidCode        = errors.New("invalid code")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStorageUnavailable = errors.New("image storage unavailable")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)
