package ports

import "context"

type AuthService interface {
	// Signup registers a new account. Returns domain.ErrUserExists when the
	// username is taken.
	Signup(ctx context.Context, username, password string) error
	// Login checks credentials and issues a signed token embedding the user's
	// id and username. Returns domain.ErrUserNotFound for an unknown username,
	// domain.ErrInvalidCredentials when the password does not match, and
	// domain.ErrTooManyAttempts when the caller is throttled.
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginLimiter throttles repeated failed login attempts per username.
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
