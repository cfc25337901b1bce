package share_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/okian/traineval/internal/adapters/share"
	"github.com/okian/traineval/internal/domain/model"
	"github.com/okian/traineval/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleSnapshot() share.Snapshot {
	days := []model.DailyEvaluation{
		model.NewDailyEvaluation(1),
		model.NewDailyEvaluation(2),
		model.NewDailyEvaluation(3),
	}
	days[0].Scores.Set(model.Safety, model.SubtopicScores{8, 9, 7})
	days[0].Scores.Set(model.Leadership, model.SubtopicScores{6, 6, 10})
	days[1].Present = false
	days[2].Scores.Set(model.Safety, model.Uniform(10))
	days[0].Date = "2025-05-01"

	rec := model.TrainingRecord{
		Name:        "Rope Rescue <Level 2>",
		Location:    "São Paulo",
		DayCount:    3,
		TotalHours:  24,
		StartDate:   "2025-05-01",
		EndDate:     "2025-05-03",
		Instructors: "Ana & Bruno",
		Logo:        "data:image/png;base64,iVBORw0KGgo=",
		Theme:       &model.Theme{Background: "0 0% 100%", Foreground: "0 0% 5%", Primary: "24 95% 53%"},
	}
	p := model.Participant{ID: "secret", Name: "Carla Dias", Age: 29, Photo: "data:image/jpeg;base64,/9j/4AAQ"}
	return share.NewSnapshot(rec, p, days)
}

func TestCodecRoundTrip(t *testing.T) {
	Convey("Given a three day snapshot with an absent day and a theme", t, func() {
		snap := sampleSnapshot()

		Convey("When encoding it", func() {
			token, err := share.Encode(snap)
			So(err, ShouldBeNil)

			Convey("Then the token should only use the URL-safe alphabet", func() {
				So(token, ShouldNotBeEmpty)
				So(strings.ContainsAny(token, "+/="), ShouldBeFalse)
			})

			Convey("And the payload should be compact JSON without HTML escaping", func() {
				raw, err := base64.RawURLEncoding.DecodeString(token)
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, `"trainingName":"Rope Rescue <Level 2>"`)
				So(string(raw), ShouldNotContainSubstring, "\n")
				So(string(raw), ShouldNotContainSubstring, `"secret"`)
			})

			Convey("And decoding should reproduce the snapshot exactly", func() {
				got, err := share.Decode(token)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, snap)
				So(got.Training().Theme, ShouldResemble, snap.Theme)
			})
		})
	})

	Convey("Given a token with padding and the standard alphabet", t, func() {
		snap := sampleSnapshot()
		token, err := share.Encode(snap)
		So(err, ShouldBeNil)
		raw, _ := base64.RawURLEncoding.DecodeString(token)
		std := base64.StdEncoding.EncodeToString(raw)

		Convey("Then it should still decode", func() {
			got, err := share.Decode(std)
			So(err, ShouldBeNil)
			So(got.Participant.Name, ShouldEqual, "Carla Dias")
		})
	})
}

func TestCodecRejects(t *testing.T) {
	encode := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	Convey("Given malformed tokens", t, func() {
		cases := map[string]string{
			"empty":            "",
			"bad base64":       "!!!not-base64!!!",
			"bad json":         encode(`{"dayCount":`),
			"not an object":    encode(`[1,2,3]`),
			"missing day":      encode(`{"participant":{"name":"A"},"evaluations":[]}`),
			"null participant": encode(`{"dayCount":3,"participant":null,"evaluations":[]}`),
			"missing evals":    encode(`{"dayCount":3,"participant":{"name":"A"}}`),
			"zero days":        encode(`{"dayCount":0,"participant":{"name":"A"},"evaluations":[]}`),
			"wrong types":      encode(`{"dayCount":"three","participant":{"name":"A"},"evaluations":[]}`),
		}

		for name, token := range cases {
			snap, err := share.Decode(token)
			Convey("Then "+name+" should be an invalid link", func() {
				So(errors.Is(err, share.ErrInvalidToken), ShouldBeTrue)
				So(snap, ShouldResemble, share.Snapshot{})
			})
		}
	})
}

func TestCodecClampsScores(t *testing.T) {
	encode := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	Convey("Given a hand-made token with out-of-range scores and stray day numbers", t, func() {
		token := encode(`{"dayCount":1,"participant":{"name":"A"},"evaluations":[` +
			`{"day":5,"present":true,"scores":{"safety":[99,99,99],"technical":[-5,0,0]}}]}`)

		snap, err := share.Decode(token)

		Convey("Then it should decode with bounded scores renumbered by position", func() {
			So(err, ShouldBeNil)
			So(snap.Evaluations, ShouldHaveLength, 1)
			day := snap.Evaluations[0]
			So(day.Day, ShouldEqual, 1)
			So(day.Scores.Get(model.Safety), ShouldResemble, model.Uniform(10))
			So(day.Scores.Get(model.Technical), ShouldResemble, model.SubtopicScores{0, 0, 0})
		})

		Convey("And the report should not pass on inflated scores", func() {
			s := scoring.Summarize(snap.DayCount, snap.Evaluations)
			So(s.OverallAverage, ShouldBeLessThanOrEqualTo, 10)
			So(s.Status, ShouldEqual, scoring.StatusFailedPerformance)
		})
	})
}

func TestLinkAndQRCode(t *testing.T) {
	Convey("Given an origin with a trailing slash", t, func() {
		link := share.Link("https://eval.example.com/", "abc_-")

		Convey("Then the link should point at the report page", func() {
			So(link, ShouldEqual, "https://eval.example.com/report?d=abc_-")
		})

		Convey("And it should render as a PNG QR code", func() {
			raw, err := share.QRCode(link, 0)
			So(err, ShouldBeNil)
			img, err := png.Decode(bytes.NewReader(raw))
			So(err, ShouldBeNil)
			So(img.Bounds().Dx(), ShouldEqual, share.DefaultQRSize)
		})

		Convey("And as terminal text", func() {
			text, err := share.QRText(link)
			So(err, ShouldBeNil)
			So(text, ShouldNotBeEmpty)
		})
	})
}
