package auth

import "errors"

// Token failures are distinguished for logging only; the middleware collapses
// all of them into the same 401 response.
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")

	ErrInvalidCredentials = errors.New("invalid email or password")
)
