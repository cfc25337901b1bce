package repository

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrNotFound   = errors.New("key not found")
	ErrInvalidKey = errors.New("invalid storage key")
	ErrStorage    = errors.New("storage failure")
)
