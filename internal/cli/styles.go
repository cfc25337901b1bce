package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/traineval/internal/domain/scoring"
)

// Palette.
var (
	colorTitle  = lipgloss.Color("#89b4fa")
	colorText   = lipgloss.Color("#cdd6f4")
	colorDim    = lipgloss.Color("#6c7086")
	colorGreen  = lipgloss.Color("#a6e3a1")
	colorYellow = lipgloss.Color("#f9e2af")
	colorRed    = lipgloss.Color("#f38ba8")
	colorBlue   = lipgloss.Color("#89dceb")
)

// styles are bound to the renderer of one output stream so colour is only
// emitted to terminals.
type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
	box     lipgloss.Style
	badge   map[scoring.Status]lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	badge := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Bold(true).Foreground(c)
	}
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorTitle),
		section: r.NewStyle().Bold(true).Foreground(colorText).MarginTop(1),
		label:   r.NewStyle().Foreground(colorDim).Width(14),
		value:   r.NewStyle().Foreground(colorText),
		dim:     r.NewStyle().Foreground(colorDim),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1),
		badge: map[scoring.Status]lipgloss.Style{
			scoring.StatusPending:           badge(colorBlue),
			scoring.StatusPassed:            badge(colorGreen),
			scoring.StatusPassedMinimum:     badge(colorYellow),
			scoring.StatusFailedAttendance:  badge(colorRed),
			scoring.StatusFailedPerformance: badge(colorRed),
		},
	}
}

func (s styles) statusBadge(st scoring.Status, label string) string {
	style, ok := s.badge[st]
	if !ok {
		style = s.value
	}
	return style.Render(label)
}
