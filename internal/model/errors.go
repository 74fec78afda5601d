package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrNoSession   = errors.New("no session")
	ErrInvalidRole = errors.New("invalid role")
)
