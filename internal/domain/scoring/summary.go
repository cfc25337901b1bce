// Package scoring derives report aggregates from a participant's daily evaluations.
//
// Every average is rounded to two decimals at the stage where it is produced
// (sub-scores -> competency -> day -> overall), so results compound rounding
// exactly the way the report has always displayed them.
package scoring

import (
	"sort"

	"github.com/okian/traineval/internal/domain/model"
)

// Approval thresholds.
const (
	MinAttendancePercent = 70
	PassAverage          = 8.0
	MinimumPassAverage   = 7.0
	StrengthThreshold    = 8.0
	ImprovementThreshold = 7.0
	// HighlightCount bounds the top and bottom competency lists.
	HighlightCount = 2
)

// Status is the approval outcome of a report.
type Status string

// Status values in evaluation order.
const (
	StatusPending           Status = "pending"
	StatusFailedAttendance  Status = "failed_attendance"
	StatusPassed            Status = "passed"
	StatusPassedMinimum     Status = "passed_minimum"
	StatusFailedPerformance Status = "failed_performance"
)

var statusLabels = map[Status]string{
	StatusPending:           "Pending",
	StatusFailedAttendance:  "Failed — attendance",
	StatusPassed:            "Passed",
	StatusPassedMinimum:     "Passed — minimum grade, improvement required",
	StatusFailedPerformance: "Failed — performance",
}

// Label returns the display text of s.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// CompetencyScore pairs a competency with a derived average.
type CompetencyScore struct {
	Competency model.Competency `json:"competency"`
	Label      string           `json:"label"`
	Score      float64          `json:"score"`
}

// SubtopicScore is the present-day average of one sub-topic position.
type SubtopicScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SubtopicBreakdown lists the sub-topic averages of one competency.
type SubtopicBreakdown struct {
	Competency model.Competency                   `json:"competency"`
	Label      string                             `json:"label"`
	Subtopics  [model.SubtopicCount]SubtopicScore `json:"subtopics"`
}

// DailyAverage is the average of one day's six competency averages.
type DailyAverage struct {
	Day     int     `json:"day"`
	Date    string  `json:"date,omitempty"`
	Present bool    `json:"present"`
	Average float64 `json:"average"`
}

// DailyExtreme names the best and worst competency of a present day.
type DailyExtreme struct {
	Day  int             `json:"day"`
	Date string          `json:"date,omitempty"`
	High CompetencyScore `json:"high"`
	Low  CompetencyScore `json:"low"`
}

// Summary holds every derived value of a report.
type Summary struct {
	DayCount          int                 `json:"dayCount"`
	PresentDays       int                 `json:"presentDays"`
	AttendancePercent int                 `json:"attendancePercent"`
	OverallAverage    float64             `json:"overallAverage"`
	AllDaysCompleted  bool                `json:"allDaysCompleted"`
	Status            Status              `json:"status"`
	StatusLabel       string              `json:"statusLabel"`
	DailyAverages     []DailyAverage      `json:"dailyAverages"`
	Competencies      []CompetencyScore   `json:"competencies"`
	Ranking           []CompetencyScore   `json:"ranking"`
	Strengths         []CompetencyScore   `json:"strengths"`
	Improvements      []CompetencyScore   `json:"improvements"`
	Top               []CompetencyScore   `json:"top"`
	Bottom            []CompetencyScore   `json:"bottom"`
	Subtopics         []SubtopicBreakdown `json:"subtopics"`
	DailyExtremes     []DailyExtreme      `json:"dailyExtremes"`
}

// CompetencyAverage is the mean of the three sub-scores of c on day.
func CompetencyAverage(day model.DailyEvaluation, c model.Competency) float64 {
	return Average(day.Scores.Get(c).Values())
}

// DayAverage is the mean of the six competency averages of day.
func DayAverage(day model.DailyEvaluation) float64 {
	all := model.Competencies()
	avgs := make([]float64, 0, len(all))
	for _, c := range all {
		avgs = append(avgs, CompetencyAverage(day, c))
	}
	return Average(avgs)
}

// PresentDays filters the days marked present, keeping order.
func PresentDays(evals []model.DailyEvaluation) []model.DailyEvaluation {
	out := make([]model.DailyEvaluation, 0, len(evals))
	for _, d := range evals {
		if d.Present {
			out = append(out, d)
		}
	}
	return out
}

// AttendancePercent is the rounded share of present days over dayCount.
func AttendancePercent(present, dayCount int) int {
	if dayCount <= 0 {
		return 0
	}
	return RoundPercent(float64(present) / float64(dayCount) * 100)
}

// OverallAverage is the mean of the daily averages of present days.
func OverallAverage(evals []model.DailyEvaluation) float64 {
	present := PresentDays(evals)
	avgs := make([]float64, 0, len(present))
	for _, d := range present {
		avgs = append(avgs, DayAverage(d))
	}
	return Average(avgs)
}

// CompetencyOverall is the mean of c's daily averages over present days.
func CompetencyOverall(evals []model.DailyEvaluation, c model.Competency) float64 {
	present := PresentDays(evals)
	avgs := make([]float64, 0, len(present))
	for _, d := range present {
		avgs = append(avgs, CompetencyAverage(d, c))
	}
	return Average(avgs)
}

// SubtopicOverall is the mean of one sub-score position over present days.
func SubtopicOverall(evals []model.DailyEvaluation, c model.Competency, pos int) float64 {
	if pos < 0 || pos >= model.SubtopicCount {
		return 0
	}
	present := PresentDays(evals)
	vals := make([]float64, 0, len(present))
	for _, d := range present {
		vals = append(vals, float64(d.Scores.Get(c)[pos]))
	}
	return Average(vals)
}

// AllDaysCompleted reports whether every configured day is either absent or
// has at least one non-zero sub-score. A present day scored all zeros is
// indistinguishable from an unstarted one and keeps the report pending.
func AllDaysCompleted(dayCount int, evals []model.DailyEvaluation) bool {
	if dayCount <= 0 || len(evals) < dayCount {
		return false
	}
	for _, d := range evals {
		if d.Present && !d.Scores.AnyNonZero() {
			return false
		}
	}
	return true
}

// DeriveStatus applies the approval rules in order; the first match wins.
func DeriveStatus(completed bool, dayCount, attendance int, overall float64) Status {
	switch {
	case !completed:
		return StatusPending
	case dayCount > 0 && attendance < MinAttendancePercent:
		return StatusFailedAttendance
	case overall >= PassAverage:
		return StatusPassed
	case overall >= MinimumPassAverage && overall < PassAverage:
		return StatusPassedMinimum
	case overall < MinimumPassAverage:
		return StatusFailedPerformance
	default:
		return StatusPending
	}
}

// Extremes returns the highest and lowest non-zero competency averages of
// day. Ties keep the first competency in canonical order. ok is false when
// every competency average is zero.
func Extremes(day model.DailyEvaluation) (high, low CompetencyScore, ok bool) {
	for _, c := range model.Competencies() {
		avg := CompetencyAverage(day, c)
		if avg <= 0 {
			continue
		}
		cs := CompetencyScore{Competency: c, Label: c.Label(), Score: avg}
		if !ok {
			high, low, ok = cs, cs, true
			continue
		}
		if cs.Score > high.Score {
			high = cs
		}
		if cs.Score < low.Score {
			low = cs
		}
	}
	return high, low, ok
}

// Summarize computes the full report for dayCount and evals. It is pure.
func Summarize(dayCount int, evals []model.DailyEvaluation) Summary {
	present := PresentDays(evals)
	all := model.Competencies()

	s := Summary{
		DayCount:          dayCount,
		PresentDays:       len(present),
		AttendancePercent: AttendancePercent(len(present), dayCount),
		OverallAverage:    OverallAverage(evals),
		AllDaysCompleted:  AllDaysCompleted(dayCount, evals),
		DailyAverages:     make([]DailyAverage, 0, len(evals)),
		Competencies:      make([]CompetencyScore, 0, len(all)),
		Subtopics:         make([]SubtopicBreakdown, 0, len(all)),
		Strengths:         []CompetencyScore{},
		Improvements:      []CompetencyScore{},
		Top:               []CompetencyScore{},
		DailyExtremes:     []DailyExtreme{},
	}
	s.Status = DeriveStatus(s.AllDaysCompleted, dayCount, s.AttendancePercent, s.OverallAverage)
	s.StatusLabel = s.Status.Label()

	for _, d := range evals {
		s.DailyAverages = append(s.DailyAverages, DailyAverage{
			Day: d.Day, Date: d.Date, Present: d.Present, Average: DayAverage(d),
		})
	}

	for _, c := range all {
		s.Competencies = append(s.Competencies, CompetencyScore{
			Competency: c, Label: c.Label(), Score: CompetencyOverall(evals, c),
		})
		b := SubtopicBreakdown{Competency: c, Label: c.Label()}
		labels := c.Subtopics()
		for pos := range labels {
			b.Subtopics[pos] = SubtopicScore{Label: labels[pos], Score: SubtopicOverall(evals, c, pos)}
		}
		s.Subtopics = append(s.Subtopics, b)
	}

	s.Ranking = make([]CompetencyScore, len(s.Competencies))
	copy(s.Ranking, s.Competencies)
	sort.SliceStable(s.Ranking, func(i, j int) bool { return s.Ranking[i].Score > s.Ranking[j].Score })
	for _, cs := range s.Ranking {
		if cs.Score >= StrengthThreshold {
			s.Strengths = append(s.Strengths, cs)
		}
		if cs.Score < ImprovementThreshold {
			s.Improvements = append(s.Improvements, cs)
		}
	}

	// Top skips unscored competencies; Bottom is the tail of the ranking as is.
	for _, cs := range s.Ranking[:HighlightCount] {
		if cs.Score > 0 {
			s.Top = append(s.Top, cs)
		}
	}
	s.Bottom = append([]CompetencyScore{}, s.Ranking[len(s.Ranking)-HighlightCount:]...)

	for _, d := range present {
		high, low, ok := Extremes(d)
		if !ok {
			continue
		}
		s.DailyExtremes = append(s.DailyExtremes, DailyExtreme{Day: d.Day, Date: d.Date, High: high, Low: low})
	}
	return s
}
