package evaluation

import "errors"

var (
	// ErrUnknownDay is returned when a day index is outside the sequence.
	ErrUnknownDay = errors.New("unknown day")
	// ErrInvalidCompetency is returned for a competency key outside the taxonomy.
	ErrInvalidCompetency = errors.New("invalid competency")
	// ErrInvalidPosition is returned for a sub-topic position outside [0,2].
	ErrInvalidPosition = errors.New("invalid sub-topic position")
	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
)
