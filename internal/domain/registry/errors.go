package registry

import "errors"

var (
	// ErrInvalidName is returned when a participant name is empty after trimming.
	ErrInvalidName = errors.New("participant name must not be empty")
	// ErrParticipantNotFound is returned for an unknown participant id.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrDuplicateID is returned when restoring a list that repeats an id.
	ErrDuplicateID = errors.New("duplicate participant id")
)
