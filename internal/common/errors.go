package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Content errors
	ErrIdentityNotFound  = errors.New("content identity not found")
	ErrRevisionNotFound  = errors.New("revision not found")
	ErrPointerNotFound   = errors.New("pointer not set")
	ErrRevisionNotOwned  = errors.New("revision does not belong to identity")
	ErrRevisionConflict  = errors.New("revision number conflict")
	ErrNoContent         = errors.New("no content configured for identity")
	ErrIdentityArchived  = errors.New("content identity is archived")
	ErrStoreUnavailable  = errors.New("content store unavailable")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Lead errors
	ErrLeadExists = errors.New("lead already registered")
)
