package services

import "errors"

var (
	// ErrValidation covers malformed or conflicting input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned for malformed or unknown resource ids.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned for an unknown name or a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Token verification failures. The HTTP layer collapses all of them into 401.
var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrPurposeMismatch = errors.New("token purpose mismatch")
	ErrTokenRevoked    = errors.New("token revoked")
	ErrUserNotFound    = errors.New("token user not found")
)
