package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/traineval/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompetencySchema(t *testing.T) {
	Convey("Given the competency taxonomy", t, func() {
		all := model.Competencies()

		Convey("Then it should list six competencies in canonical order", func() {
			So(all, ShouldResemble, []model.Competency{
				model.Safety, model.Technical, model.Communication,
				model.PhysicalFitness, model.Leadership, model.Operational,
			})
		})

		Convey("And every competency should carry three sub-topic labels", func() {
			for _, c := range all {
				So(c.Valid(), ShouldBeTrue)
				for _, label := range c.Subtopics() {
					So(label, ShouldNotBeEmpty)
				}
			}
			So(model.Safety.Subtopics(), ShouldResemble, [3]string{"Prevention", "PPE", "Procedures"})
		})

		Convey("And mutating the returned slice should not affect the taxonomy", func() {
			all[0] = "bogus"
			So(model.Competencies()[0], ShouldEqual, model.Safety)
		})

		Convey("And unknown keys should be rejected", func() {
			_, ok := model.ParseCompetency("charisma")
			So(ok, ShouldBeFalse)
			c, ok := model.ParseCompetency("physical-fitness")
			So(ok, ShouldBeTrue)
			So(c.Label(), ShouldEqual, "Physical Fitness")
		})
	})
}

func TestScores(t *testing.T) {
	Convey("Given an empty score matrix", t, func() {
		var s model.Scores

		Convey("When writing a single cell", func() {
			ok := s.SetCell(model.Leadership, 2, 9)

			Convey("Then only that cell should change", func() {
				So(ok, ShouldBeTrue)
				So(s.Get(model.Leadership), ShouldResemble, model.SubtopicScores{0, 0, 9})
				So(s.Get(model.Safety), ShouldResemble, model.SubtopicScores{})
				So(s.AnyNonZero(), ShouldBeTrue)
			})
		})

		Convey("When writing out-of-range values", func() {
			s.SetCell(model.Safety, 0, 14)
			s.SetCell(model.Safety, 1, -3)

			Convey("Then they should be clamped to [0,10]", func() {
				So(s.Get(model.Safety), ShouldResemble, model.SubtopicScores{10, 0, 0})
			})
		})

		Convey("When a whole matrix holds out-of-range values", func() {
			s.Set(model.Safety, model.SubtopicScores{99, 99, 99})
			s.Set(model.Technical, model.SubtopicScores{-5, 0, 7})
			s.Clamp()

			Convey("Then every cell should be bounded", func() {
				So(s.Get(model.Safety), ShouldResemble, model.Uniform(10))
				So(s.Get(model.Technical), ShouldResemble, model.SubtopicScores{0, 0, 7})
			})
		})

		Convey("When addressing an invalid cell", func() {
			Convey("Then the write should be refused", func() {
				So(s.SetCell(model.Safety, 3, 5), ShouldBeFalse)
				So(s.SetCell("charisma", 0, 5), ShouldBeFalse)
				So(s.AnyNonZero(), ShouldBeFalse)
			})
		})

		Convey("When marshalled to JSON", func() {
			s.Set(model.PhysicalFitness, model.Uniform(4))
			raw, err := json.Marshal(s)

			Convey("Then every competency key should be present as a triple", func() {
				So(err, ShouldBeNil)
				var doc map[string][]int
				So(json.Unmarshal(raw, &doc), ShouldBeNil)
				So(len(doc), ShouldEqual, 6)
				So(doc["physical-fitness"], ShouldResemble, []int{4, 4, 4})
				So(doc["safety"], ShouldResemble, []int{0, 0, 0})
			})
		})
	})
}

func TestTrainingHelpers(t *testing.T) {
	Convey("Given the training helpers", t, func() {
		Convey("Then the default record should be three days of eight hours", func() {
			rec := model.DefaultTrainingRecord()
			So(rec.DayCount, ShouldEqual, 3)
			So(rec.TotalHours, ShouldEqual, 24)
			So(rec.Name, ShouldBeEmpty)
		})

		Convey("And day counts should be clamped", func() {
			So(model.ClampDayCount(0, 30), ShouldEqual, 1)
			So(model.ClampDayCount(-4, 30), ShouldEqual, 1)
			So(model.ClampDayCount(45, 30), ShouldEqual, 30)
			So(model.ClampDayCount(45, 0), ShouldEqual, 45)
		})

		Convey("And ages should be clamped", func() {
			So(model.ClampAge(-1), ShouldEqual, 0)
			So(model.ClampAge(34), ShouldEqual, 34)
			So(model.ClampAge(500), ShouldEqual, model.MaxAge)
		})

		Convey("And dates should shift across month boundaries", func() {
			start, err := model.ParseDate("2025-01-30")
			So(err, ShouldBeNil)
			So(model.AddDays(start, 2), ShouldEqual, "2025-02-01")
			_, err = model.ParseDate("30/01/2025")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNormalizeEvaluations(t *testing.T) {
	Convey("Given evaluations with stray day numbers and scores", t, func() {
		evals := []model.DailyEvaluation{model.NewDailyEvaluation(7), model.NewDailyEvaluation(7)}
		evals[1].Scores.Set(model.Leadership, model.SubtopicScores{11, 4, -1})
		model.NormalizeEvaluations(evals)

		Convey("Then days should follow position and scores should be clamped", func() {
			So(evals[0].Day, ShouldEqual, 1)
			So(evals[1].Day, ShouldEqual, 2)
			So(evals[1].Scores.Get(model.Leadership), ShouldResemble, model.SubtopicScores{10, 4, 0})
		})
	})
}
