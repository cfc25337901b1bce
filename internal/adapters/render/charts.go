package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/okian/traineval/internal/domain/model"
	"github.com/okian/traineval/internal/domain/scoring"
)

// DayLabel names a day by its date when stamped, otherwise by its index.
func DayLabel(day int, date string) string {
	if date != "" {
		return date
	}
	return fmt.Sprintf("Day %d", day)
}

// DailyAverageBar charts every day's average, absent days included.
func DailyAverageBar(s scoring.Summary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Daily average"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: model.MaxScore}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	labels := make([]string, 0, len(s.DailyAverages))
	items := make([]opts.BarData, 0, len(s.DailyAverages))
	for _, d := range s.DailyAverages {
		labels = append(labels, DayLabel(d.Day, d.Date))
		items = append(items, opts.BarData{Value: d.Average})
	}
	bar.SetXAxis(labels).AddSeries("Average", items)
	return bar
}

// DailyTrendLine charts the evolution of daily averages.
func DailyTrendLine(s scoring.Summary) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Evolution"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: model.MaxScore}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	labels := make([]string, 0, len(s.DailyAverages))
	items := make([]opts.LineData, 0, len(s.DailyAverages))
	for _, d := range s.DailyAverages {
		labels = append(labels, DayLabel(d.Day, d.Date))
		items = append(items, opts.LineData{Value: d.Average})
	}
	line.SetXAxis(labels).
		AddSeries("Average", items).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

// CompetencyRadar charts the overall score of each competency.
func CompetencyRadar(s scoring.Summary) *charts.Radar {
	radar := charts.NewRadar()
	indicators := make([]*opts.Indicator, 0, len(s.Competencies))
	values := make([]float64, 0, len(s.Competencies))
	for _, c := range s.Competencies {
		indicators = append(indicators, &opts.Indicator{Name: c.Label, Max: model.MaxScore})
		values = append(values, c.Score)
	}
	radar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Competencies"}),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)
	radar.AddSeries("Score", []opts.RadarData{{Value: values}})
	return radar
}

// SubtopicBar charts the three sub-topic averages of each competency as
// one series per sub-topic position.
func SubtopicBar(s scoring.Summary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Sub-topics"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: model.MaxScore}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	labels := make([]string, 0, len(s.Subtopics))
	for _, b := range s.Subtopics {
		labels = append(labels, b.Label)
	}
	bar.SetXAxis(labels)
	for pos := 0; pos < model.SubtopicCount; pos++ {
		items := make([]opts.BarData, 0, len(s.Subtopics))
		for _, b := range s.Subtopics {
			items = append(items, opts.BarData{Name: b.Subtopics[pos].Label, Value: b.Subtopics[pos].Score})
		}
		bar.AddSeries(fmt.Sprintf("Sub-topic %d", pos+1), items)
	}
	return bar
}

// ChartsPage writes an HTML page holding every report chart.
func ChartsPage(w io.Writer, title string, s scoring.Summary) error {
	page := components.NewPage()
	if title != "" {
		page.PageTitle = title
	}
	page.AddCharts(
		DailyAverageBar(s),
		CompetencyRadar(s),
		DailyTrendLine(s),
		SubtopicBar(s),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering charts: %w", err)
	}
	return nil
}
