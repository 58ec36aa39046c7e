package util

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSoldOut            = errors.New("event is sold out")
	ErrEventInactive      = errors.New("event is no longer active")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnavailable        = errors.New("service unavailable")
	ErrInvalidVerifyCode  = errors.New("invalid or expired verification code")
	ErrUnknownProvider    = errors.New("unknown auth provider")
	ErrTooManyAttempts    = errors.New("too many attempts, request a new code")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
