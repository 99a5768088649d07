package domain

import "errors"

// Sentinel errors shared across services, repositories, and the HTTP error
// handler. Repositories translate driver errors into these; handlers and the
// central error handler map them to status codes.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrPostNotFound     = errors.New("post not found")
	ErrIdentityMismatch = errors.New("token identity does not match supplied user id")
	ErrNotPostOwner     = errors.New("post is not owned by caller")
)
