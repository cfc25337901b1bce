package evaluation_test

import (
	"errors"
	"testing"

	"github.com/okian/traineval/internal/domain/evaluation"
	"github.com/okian/traineval/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSetDayCount(t *testing.T) {
	Convey("Given a three day training with scored days", t, func() {
		rec := model.DefaultTrainingRecord()
		evals := evaluation.Reconcile(nil, 3, "")
		So(evaluation.SetSubscore(evals, 2, model.Safety, 1, 6), ShouldBeNil)

		Convey("When growing to five days", func() {
			out := evaluation.SetDayCount(&rec, evals, 5, model.DefaultMaxDays)

			Convey("Then two fresh present days should be appended", func() {
				So(len(out), ShouldEqual, 5)
				So(rec.DayCount, ShouldEqual, 5)
				So(rec.TotalHours, ShouldEqual, 40)
				So(out[3].Day, ShouldEqual, 4)
				So(out[4].Day, ShouldEqual, 5)
				for _, d := range out[3:] {
					So(d.Present, ShouldBeTrue)
					So(d.Scores.AnyNonZero(), ShouldBeFalse)
				}
			})

			Convey("And existing days should be untouched", func() {
				So(out[1].Scores.Get(model.Safety), ShouldResemble, model.SubtopicScores{0, 6, 0})
			})

			Convey("And the input sequence should not be modified", func() {
				So(len(evals), ShouldEqual, 3)
			})
		})

		Convey("When shrinking from five to three days", func() {
			five := evaluation.SetDayCount(&rec, evals, 5, model.DefaultMaxDays)
			five[4].Present = false
			out := evaluation.SetDayCount(&rec, five, 3, model.DefaultMaxDays)

			Convey("Then days four and five should be discarded", func() {
				So(len(out), ShouldEqual, 3)
				So(out[2].Day, ShouldEqual, 3)
				So(out[1].Scores.Get(model.Safety), ShouldResemble, model.SubtopicScores{0, 6, 0})
				So(rec.TotalHours, ShouldEqual, 24)
			})
		})

		Convey("When the requested count is out of range", func() {
			low := evaluation.SetDayCount(&rec, evals, 0, model.DefaultMaxDays)
			So(len(low), ShouldEqual, 1)
			high := evaluation.SetDayCount(&rec, evals, 99, model.DefaultMaxDays)

			Convey("Then it should be clamped", func() {
				So(len(high), ShouldEqual, model.DefaultMaxDays)
				So(rec.DayCount, ShouldEqual, model.DefaultMaxDays)
			})
		})

		Convey("When a start date is set", func() {
			rec.StartDate = "2025-03-30"
			out := evaluation.SetDayCount(&rec, evals, 4, model.DefaultMaxDays)

			Convey("Then labels and end date should follow it", func() {
				So(out[0].Date, ShouldEqual, "2025-03-30")
				So(out[3].Date, ShouldEqual, "2025-04-02")
				So(rec.EndDate, ShouldEqual, "2025-04-02")
			})
		})
	})
}

func TestReconcile(t *testing.T) {
	Convey("Given a stored sequence with broken numbering", t, func() {
		stored := []model.DailyEvaluation{
			{Day: 7, Present: false, Date: "stale"},
			{Day: 2, Present: true},
		}

		Convey("When reconciled against a longer training without start date", func() {
			out := evaluation.Reconcile(stored, 3, "")

			Convey("Then days should be dense and labels cleared", func() {
				So(out[0].Day, ShouldEqual, 1)
				So(out[0].Present, ShouldBeFalse)
				So(out[0].Date, ShouldBeEmpty)
				So(out[2].Day, ShouldEqual, 3)
				So(out[2].Present, ShouldBeTrue)
				So(stored[0].Day, ShouldEqual, 7)
			})
		})
	})
}

func TestDates(t *testing.T) {
	Convey("Given a training with labels stamped", t, func() {
		rec := model.DefaultTrainingRecord()
		evals := evaluation.Reconcile(nil, 3, "")

		Convey("When setting the start date", func() {
			out, err := evaluation.SetStartDate(&rec, evals, "2024-12-31")

			Convey("Then end date and labels should cascade", func() {
				So(err, ShouldBeNil)
				So(rec.EndDate, ShouldEqual, "2025-01-02")
				So(out[1].Date, ShouldEqual, "2025-01-01")
			})

			Convey("And clearing it should clear labels but keep the end date", func() {
				cleared, err := evaluation.SetStartDate(&rec, out, "")
				So(err, ShouldBeNil)
				So(rec.StartDate, ShouldBeEmpty)
				So(rec.EndDate, ShouldEqual, "2025-01-02")
				So(cleared[1].Date, ShouldBeEmpty)
			})
		})

		Convey("When editing the end date", func() {
			So(evaluation.SetEndDate(&rec, "2025-06-01"), ShouldBeNil)

			Convey("Then only the end date should change", func() {
				So(rec.EndDate, ShouldEqual, "2025-06-01")
				So(rec.StartDate, ShouldBeEmpty)
			})
		})

		Convey("When a date is malformed", func() {
			_, err := evaluation.SetStartDate(&rec, evals, "31/12/2024")
			endErr := evaluation.SetEndDate(&rec, "soon")

			Convey("Then ErrInvalidDate should be returned", func() {
				So(errors.Is(err, evaluation.ErrInvalidDate), ShouldBeTrue)
				So(errors.Is(endErr, evaluation.ErrInvalidDate), ShouldBeTrue)
			})
		})
	})
}

func TestEdits(t *testing.T) {
	Convey("Given a two day sequence", t, func() {
		evals := evaluation.Reconcile(nil, 2, "")

		Convey("When setting a sub-score above range", func() {
			err := evaluation.SetSubscore(evals, 1, model.Operational, 0, 15)

			Convey("Then only that cell should change, clamped", func() {
				So(err, ShouldBeNil)
				So(evals[0].Scores.Get(model.Operational), ShouldResemble, model.SubtopicScores{10, 0, 0})
				So(evals[1].Scores.AnyNonZero(), ShouldBeFalse)
			})
		})

		Convey("When replacing a whole triple", func() {
			err := evaluation.SetScores(evals, 2, model.Technical, model.SubtopicScores{4, -1, 7})

			Convey("Then every value should be clamped", func() {
				So(err, ShouldBeNil)
				So(evals[1].Scores.Get(model.Technical), ShouldResemble, model.SubtopicScores{4, 0, 7})
			})
		})

		Convey("When toggling presence", func() {
			So(evaluation.SetSubscore(evals, 2, model.Safety, 2, 5), ShouldBeNil)
			So(evaluation.SetPresence(evals, 2, false), ShouldBeNil)

			Convey("Then scores should be preserved", func() {
				So(evals[1].Present, ShouldBeFalse)
				So(evals[1].Scores.Get(model.Safety)[2], ShouldEqual, 5)
			})
		})

		Convey("When addressing invalid cells", func() {
			So(errors.Is(evaluation.SetSubscore(evals, 3, model.Safety, 0, 1), evaluation.ErrUnknownDay), ShouldBeTrue)
			So(errors.Is(evaluation.SetSubscore(evals, 0, model.Safety, 0, 1), evaluation.ErrUnknownDay), ShouldBeTrue)
			So(errors.Is(evaluation.SetSubscore(evals, 1, "charisma", 0, 1), evaluation.ErrInvalidCompetency), ShouldBeTrue)
			So(errors.Is(evaluation.SetSubscore(evals, 1, model.Safety, 3, 1), evaluation.ErrInvalidPosition), ShouldBeTrue)
			So(errors.Is(evaluation.SetPresence(evals, 9, true), evaluation.ErrUnknownDay), ShouldBeTrue)

			Convey("Then nothing should change", func() {
				So(evals[0].Scores.AnyNonZero(), ShouldBeFalse)
			})
		})
	})
}
