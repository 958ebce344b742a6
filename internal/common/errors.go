// Package common defines shared constants and sentinel errors used across
// the WorldCovers server and client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorConflict     = errors.New("conflict")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Submission image errors.
	ErrImageTooLarge       = errors.New("image too large")
	ErrImageTypeNotAllowed = errors.New("image type not allowed")
)
