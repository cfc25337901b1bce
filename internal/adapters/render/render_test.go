package render_test

import (
	"bytes"
	"testing"

	"github.com/okian/traineval/internal/adapters/render"
	"github.com/okian/traineval/internal/domain/model"
	"github.com/okian/traineval/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFileName(t *testing.T) {
	Convey("Given participant names", t, func() {
		So(render.FileName("Ana  Maria\tSouza", "pdf"), ShouldEqual, "report_Ana_Maria_Souza.pdf")
		So(render.FileName("Bruno", ".png"), ShouldEqual, "report_Bruno.png")
		So(render.FileName("", "png"), ShouldEqual, "report_participant.png")
		So(render.FileName("Carla", ""), ShouldEqual, "report_Carla")
	})
}

func TestCharts(t *testing.T) {
	Convey("Given a summary with an absent day", t, func() {
		day1 := model.NewDailyEvaluation(1)
		day1.Date = "2025-02-10"
		day1.Scores.Set(model.Safety, model.SubtopicScores{9, 8, 7})
		day2 := model.NewDailyEvaluation(2)
		day2.Present = false
		s := scoring.Summarize(2, []model.DailyEvaluation{day1, day2})

		Convey("Then day labels should prefer dates", func() {
			So(render.DayLabel(1, "2025-02-10"), ShouldEqual, "2025-02-10")
			So(render.DayLabel(2, ""), ShouldEqual, "Day 2")
		})

		Convey("When rendering the charts page", func() {
			var buf bytes.Buffer
			err := render.ChartsPage(&buf, "Report Ana", s)

			Convey("Then an HTML page with every chart should be written", func() {
				So(err, ShouldBeNil)
				html := buf.String()
				So(html, ShouldContainSubstring, "<html")
				So(html, ShouldContainSubstring, "Report Ana")
				So(html, ShouldContainSubstring, "Daily average")
				So(html, ShouldContainSubstring, "Competencies")
				So(html, ShouldContainSubstring, "Sub-topics")
				So(html, ShouldContainSubstring, "2025-02-10")
			})
		})
	})
}
