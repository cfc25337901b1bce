package service

import "errors"

var (
	// ErrNotStarted is returned when an operation runs before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrNoActiveParticipant is returned for evaluation edits with no participant selected.
	ErrNoActiveParticipant = errors.New("no active participant")
	// ErrInvalidInput is returned for malformed requests that cannot be clamped.
	ErrInvalidInput = errors.New("invalid input")
)
