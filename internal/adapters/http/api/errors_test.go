package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/okian/traineval/internal/adapters/share"
	service "github.com/okian/traineval/internal/app"
	"github.com/okian/traineval/internal/domain/evaluation"
	"github.com/okian/traineval/internal/domain/registry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestError(t *testing.T) {
	Convey("Given op-tagged errors", t, func() {
		cause := errors.New("boom")

		Convey("Then the message should join op, kind and cause", func() {
			So(WrapKind("api.x", ErrBadRequest, cause).Error(), ShouldEqual, "api.x: bad request: boom")
			So(NewKind("api.x", ErrRender).Error(), ShouldEqual, "api.x: render failed")
			So(Wrap("api.x", cause).Error(), ShouldEqual, "api.x: boom")
		})

		Convey("And errors.Is should see both kind and cause", func() {
			err := WrapKind("api.x", ErrBadRequest, cause)
			So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given domain errors", t, func() {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{fmt.Errorf("decode: %w", share.ErrInvalidToken), http.StatusUnprocessableEntity, "invalid_link"},
			{service.ErrNoActiveParticipant, http.StatusConflict, "no_active_participant"},
			{registry.ErrParticipantNotFound, http.StatusNotFound, "not_found"},
			{evaluation.ErrUnknownDay, http.StatusNotFound, "not_found"},
			{fmt.Errorf("%w: %w", service.ErrInvalidInput, evaluation.ErrInvalidDate), http.StatusBadRequest, "bad_request"},
			{service.ErrNotStarted, http.StatusServiceUnavailable, "unavailable"},
			{errors.New("disk full"), http.StatusInternalServerError, "internal_error"},
		}

		Convey("Then each should map to its status", func() {
			for _, tc := range cases {
				status, code := classify(tc.err)
				So(status, ShouldEqual, tc.status)
				So(code, ShouldEqual, tc.code)
			}
		})
	})

	Convey("Given request paths", t, func() {
		So(pathSegments("/participants/abc/activate", "/participants/"), ShouldResemble, []string{"abc", "activate"})
		So(pathSegments("/participants/", "/participants/"), ShouldBeNil)
		So(getErrorType(409), ShouldEqual, "conflict")
		So(getErrorType(503), ShouldEqual, "unavailable")
	})
}
