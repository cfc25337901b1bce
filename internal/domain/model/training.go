package model

import (
	"strings"
	"time"
)

// Training defaults and limits.
const (
	HoursPerDay     = 8
	DefaultDayCount = 3
	DefaultMaxDays  = 30
	MaxAge          = 120

	// DateLayout is the calendar date format used for start, end and day labels.
	DateLayout = "2006-01-02"
)

// Theme carries the report colour triple. Values are opaque to the core.
type Theme struct {
	Background string `json:"background,omitempty"`
	Foreground string `json:"foreground,omitempty"`
	Primary    string `json:"primary,omitempty"`
}

// IsZero reports whether no colour is set.
func (t Theme) IsZero() bool {
	return t.Background == "" && t.Foreground == "" && t.Primary == ""
}

// Participant is a trainee being evaluated.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Age is optional; zero means unset.
	Age int `json:"age,omitempty"`
	// Photo is an opaque image reference, usually a data URL.
	Photo string `json:"photo,omitempty"`
}

// TrainingRecord holds the training metadata.
type TrainingRecord struct {
	Name         string `json:"name"`
	Location     string `json:"location"`
	DayCount     int    `json:"dayCount"`
	TotalHours   int    `json:"totalHours"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	Instructors  string `json:"instructors,omitempty"`
	Organization string `json:"organization,omitempty"`
	Logo         string `json:"logo,omitempty"`
	Theme        *Theme `json:"theme,omitempty"`

	// ActiveParticipantID is a weak reference persisted under its own key.
	ActiveParticipantID string `json:"-"`
}

// DefaultTrainingRecord returns the record used on first start and after a reset.
func DefaultTrainingRecord() TrainingRecord {
	return TrainingRecord{
		DayCount:   DefaultDayCount,
		TotalHours: TotalHours(DefaultDayCount),
	}
}

// TotalHours derives the workload from the day count.
func TotalHours(dayCount int) int {
	return dayCount * HoursPerDay
}

// ClampDayCount bounds n to [1, maxDays]. A non-positive maxDays disables the upper bound.
func ClampDayCount(n, maxDays int) int {
	if n < 1 {
		return 1
	}
	if maxDays > 0 && n > maxDays {
		return maxDays
	}
	return n
}

// ClampAge bounds an optional age to [0, MaxAge]; zero means unset.
func ClampAge(age int) int {
	switch {
	case age < 0:
		return 0
	case age > MaxAge:
		return MaxAge
	default:
		return age
	}
}

// ParseDate validates a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// AddDays returns start shifted by n days, formatted in DateLayout.
func AddDays(start time.Time, n int) string {
	return start.AddDate(0, 0, n).Format(DateLayout)
}
