package auth

import "errors"

// Verification and login failures. All of them surface to clients as a plain 401.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing authentication token")
	ErrMalformedToken     = errors.New("malformed authentication token")
	ErrTokenExpired       = errors.New("authentication token expired")
)
