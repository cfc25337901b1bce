package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	service "github.com/okian/traineval/internal/app"
	"github.com/okian/traineval/internal/domain/scoring"
)

// barWidth is the number of cells for a score of 10.
const barWidth = 20

// renderReport formats a report for the terminal.
func renderReport(w io.Writer, rep service.Report) string {
	st := newStyles(w)
	sum := rep.Summary

	name := rep.Participant.Name
	if name == "" {
		name = "Participant"
	}
	title := name
	if rep.Training.Name != "" {
		title += st.dim.Render("  ·  ") + rep.Training.Name
	}

	var header []string
	field := func(label, value string) {
		if value == "" {
			return
		}
		header = append(header, st.label.Render(label)+st.value.Render(value))
	}
	field("Location", rep.Training.Location)
	field("Period", period(rep.Training.StartDate, rep.Training.EndDate))
	field("Workload", fmt.Sprintf("%d days · %dh", rep.Training.DayCount, rep.Training.TotalHours))
	field("Instructors", rep.Training.Instructors)
	field("Organization", rep.Training.Organization)
	field("Attendance", fmt.Sprintf("%d%% (%d/%d days)", sum.AttendancePercent, sum.PresentDays, sum.DayCount))
	field("Overall", fmt.Sprintf("%.2f", sum.OverallAverage))
	header = append(header, st.label.Render("Status")+st.statusBadge(sum.Status, sum.StatusLabel))

	blocks := []string{
		st.title.Render(title),
		lipgloss.JoinVertical(lipgloss.Left, header...),
		st.section.Render("Competencies"),
		scoreTable(st, sum.Ranking),
	}
	if len(sum.Strengths) > 0 {
		blocks = append(blocks, st.section.Render("Strengths"), listScores(st, sum.Strengths))
	}
	if len(sum.Improvements) > 0 {
		blocks = append(blocks, st.section.Render("Needs improvement"), listScores(st, sum.Improvements))
	}
	blocks = append(blocks, st.section.Render("Daily averages"), dailyTable(st, sum.DailyAverages))
	if rep.Shared {
		blocks = append(blocks, st.dim.Render("read-only copy from a share link"))
	}

	return st.box.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...)) + "\n"
}

func period(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return "until " + end
	default:
		return start + " → " + end
	}
}

func bar(score float64) string {
	n := int(score / 10 * barWidth)
	if n < 0 {
		n = 0
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}

func scoreTable(st styles, scores []scoring.CompetencyScore) string {
	rows := make([]string, 0, len(scores))
	for _, c := range scores {
		rows = append(rows, st.label.Width(18).Render(c.Label)+
			st.value.Render(fmt.Sprintf("%5.2f ", c.Score))+
			st.dim.Render(bar(c.Score)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func listScores(st styles, scores []scoring.CompetencyScore) string {
	rows := make([]string, 0, len(scores))
	for _, c := range scores {
		rows = append(rows, st.value.Render(fmt.Sprintf("• %s (%.2f)", c.Label, c.Score)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func dailyTable(st styles, days []scoring.DailyAverage) string {
	rows := make([]string, 0, len(days))
	for _, d := range days {
		label := fmt.Sprintf("Day %d", d.Day)
		if d.Date != "" {
			label += " " + d.Date
		}
		value := fmt.Sprintf("%5.2f", d.Average)
		if !d.Present {
			value = st.dim.Render("absent")
		}
		rows = append(rows, st.label.Width(18).Render(label)+st.value.Render(value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
