// Package share turns one participant's report into a self-contained,
// URL-safe token and back.
package share

import (
	"github.com/okian/traineval/internal/domain/model"
)

// Participant is the shared subset of a participant; the id stays private.
type Participant struct {
	Name  string `json:"name"`
	Age   int    `json:"age,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// Snapshot is a read-only copy of a report: training fields plus one
// participant's evaluations.
type Snapshot struct {
	TrainingName string                  `json:"trainingName"`
	Location     string                  `json:"location"`
	DayCount     int                     `json:"dayCount"`
	TotalHours   int                     `json:"totalHours"`
	StartDate    string                  `json:"startDate,omitempty"`
	EndDate      string                  `json:"endDate,omitempty"`
	Instructors  string                  `json:"instructors,omitempty"`
	Organization string                  `json:"organization,omitempty"`
	Participant  Participant             `json:"participant"`
	Logo         string                  `json:"logo,omitempty"`
	Evaluations  []model.DailyEvaluation `json:"evaluations"`
	Theme        *model.Theme            `json:"theme,omitempty"`
}

// NewSnapshot captures the report of p under rec.
func NewSnapshot(rec model.TrainingRecord, p model.Participant, evals []model.DailyEvaluation) Snapshot {
	s := Snapshot{
		TrainingName: rec.Name,
		Location:     rec.Location,
		DayCount:     rec.DayCount,
		TotalHours:   rec.TotalHours,
		StartDate:    rec.StartDate,
		EndDate:      rec.EndDate,
		Instructors:  rec.Instructors,
		Organization: rec.Organization,
		Participant:  Participant{Name: p.Name, Age: p.Age, Photo: p.Photo},
		Logo:         rec.Logo,
		Evaluations:  model.CloneEvaluations(evals),
	}
	if s.Evaluations == nil {
		s.Evaluations = []model.DailyEvaluation{}
	}
	if rec.Theme != nil && !rec.Theme.IsZero() {
		theme := *rec.Theme
		s.Theme = &theme
	}
	return s
}

// Training rebuilds the training record carried by the snapshot.
func (s Snapshot) Training() model.TrainingRecord {
	rec := model.TrainingRecord{
		Name:         s.TrainingName,
		Location:     s.Location,
		DayCount:     s.DayCount,
		TotalHours:   s.TotalHours,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		Instructors:  s.Instructors,
		Organization: s.Organization,
		Logo:         s.Logo,
	}
	if s.Theme != nil {
		theme := *s.Theme
		rec.Theme = &theme
	}
	return rec
}
