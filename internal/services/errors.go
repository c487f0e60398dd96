package services

import "errors"

// Failure kinds surfaced to handlers. Handlers branch on these with
// errors.Is and map them to response codes; anything else is a 500.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrCodeNotFound   = errors.New("code not found")
	ErrFileNotFound   = errors.New("file not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEmail = errors.New("user is already registered")
	ErrNoFile         = errors.New("no file uploaded")
)
