package service

import "errors"

// Domain failures returned to the HTTP layer. Storage and crypto failures
// are wrapped as-is and surface as internal errors.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrConflict             = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrInvalidOrExpired     = errors.New("verification token invalid or expired")
	ErrInvalidOrExpiredCode = errors.New("two-factor code invalid or expired")
	ErrAlreadyVerified      = errors.New("email already verified")
	ErrNotFound             = errors.New("not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidToken         = errors.New("invalid token")
	ErrNotificationFailed   = errors.New("notification delivery failed")
)
