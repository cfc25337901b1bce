// Package evaluation keeps a participant's daily evaluation sequence in step
// with the training record: length equals the day count, day indices are
// dense and display dates follow the start date.
package evaluation

import (
	"fmt"
	"strings"

	"github.com/okian/traineval/internal/domain/model"
)

// Reconcile returns evals resized to dayCount. Missing days are appended
// unscored and present, extra days are dropped from the tail. Days are
// renumbered and their display dates restamped from startDate. The input is
// not modified.
func Reconcile(evals []model.DailyEvaluation, dayCount int, startDate string) []model.DailyEvaluation {
	if dayCount < 1 {
		dayCount = 1
	}
	out := make([]model.DailyEvaluation, dayCount)
	n := copy(out, evals)
	for i := n; i < dayCount; i++ {
		out[i] = model.NewDailyEvaluation(i + 1)
	}
	for i := range out {
		out[i].Day = i + 1
	}
	StampDates(out, startDate)
	return out
}

// StampDates sets each day's label to startDate plus its offset. An empty or
// unparseable start date clears every label.
func StampDates(evals []model.DailyEvaluation, startDate string) {
	start, err := model.ParseDate(startDate)
	for i := range evals {
		if err != nil {
			evals[i].Date = ""
			continue
		}
		evals[i].Date = model.AddDays(start, i)
	}
}

// EndDate derives the last training day from startDate and dayCount.
// ok is false when startDate is empty or invalid.
func EndDate(startDate string, dayCount int) (end string, ok bool) {
	start, err := model.ParseDate(startDate)
	if err != nil {
		return "", false
	}
	if dayCount < 1 {
		dayCount = 1
	}
	return model.AddDays(start, dayCount-1), true
}

// SetDayCount clamps n to [1, maxDays], updates the record's day count, hours
// and end date, and returns the reconciled sequence.
func SetDayCount(rec *model.TrainingRecord, evals []model.DailyEvaluation, n, maxDays int) []model.DailyEvaluation {
	n = model.ClampDayCount(n, maxDays)
	rec.DayCount = n
	rec.TotalHours = model.TotalHours(n)
	if end, ok := EndDate(rec.StartDate, n); ok {
		rec.EndDate = end
	}
	return Reconcile(evals, n, rec.StartDate)
}

// SetStartDate sets the start date, cascading to the end date and the day
// labels. An empty date clears the start date and labels but keeps the end
// date, which is edited independently.
func SetStartDate(rec *model.TrainingRecord, evals []model.DailyEvaluation, date string) ([]model.DailyEvaluation, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		rec.StartDate = ""
		out := model.CloneEvaluations(evals)
		StampDates(out, "")
		return out, nil
	}
	start, err := model.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q", ErrInvalidDate, date)
	}
	rec.StartDate = start.Format(model.DateLayout)
	rec.EndDate, _ = EndDate(rec.StartDate, rec.DayCount)
	out := model.CloneEvaluations(evals)
	StampDates(out, rec.StartDate)
	return out, nil
}

// SetEndDate changes only the end date. An empty date clears it.
func SetEndDate(rec *model.TrainingRecord, date string) error {
	date = strings.TrimSpace(date)
	if date == "" {
		rec.EndDate = ""
		return nil
	}
	end, err := model.ParseDate(date)
	if err != nil {
		return fmt.Errorf("%w: end date %q", ErrInvalidDate, date)
	}
	rec.EndDate = end.Format(model.DateLayout)
	return nil
}

func dayAt(evals []model.DailyEvaluation, day int) (*model.DailyEvaluation, error) {
	if day < 1 || day > len(evals) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDay, day)
	}
	return &evals[day-1], nil
}

// SetSubscore writes one clamped cell in place. No other cell changes.
func SetSubscore(evals []model.DailyEvaluation, day int, c model.Competency, pos, value int) error {
	d, err := dayAt(evals, day)
	if err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCompetency, c)
	}
	if !d.Scores.SetCell(c, pos, value) {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}
	return nil
}

// SetScores replaces the triple of c on day, clamping every value.
func SetScores(evals []model.DailyEvaluation, day int, c model.Competency, values model.SubtopicScores) error {
	if _, err := dayAt(evals, day); err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCompetency, c)
	}
	for pos, v := range values {
		if err := SetSubscore(evals, day, c, pos, v); err != nil {
			return err
		}
	}
	return nil
}

// SetPresence toggles attendance for day. Scores are kept as they are.
func SetPresence(evals []model.DailyEvaluation, day int, present bool) error {
	d, err := dayAt(evals, day)
	if err != nil {
		return err
	}
	d.Present = present
	return nil
}
