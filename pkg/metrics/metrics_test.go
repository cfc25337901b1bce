package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a dedicated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then its collectors should be registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.participants.Set(2)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_participants")
			})
		})

		Convey("When two managers share a registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then duplicate registration should panic", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording storage writes", func() {
			before := testutil.ToFloat64(globalManager.storageWrites.WithLabelValues("training"))
			RecordStorageWrite("training", 0.4)
			RecordStorageWrite("training", 0.7)

			Convey("Then the counter should grow by the number of writes", func() {
				after := testutil.ToFloat64(globalManager.storageWrites.WithLabelValues("training"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording share decode failures", func() {
			before := testutil.ToFloat64(globalManager.shareDecodeFailure.WithLabelValues("base64"))
			RecordShareDecodeFailure("base64")

			Convey("Then the labelled counter should be incremented", func() {
				after := testutil.ToFloat64(globalManager.shareDecodeFailure.WithLabelValues("base64"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When updating gauges", func() {
			UpdateParticipants(4)
			UpdateEvaluationDays(5)

			Convey("Then they should hold the last value", func() {
				So(testutil.ToFloat64(globalManager.participants), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.evaluationDays), ShouldEqual, 5)
			})
		})

		Convey("When recording the remaining helpers", func() {
			Convey("Then none of them should panic", func() {
				So(func() {
					RecordStorageError("participants", "set")
					RecordStorageFallback("training")
					RecordLegacyMigration()
					RecordShareEncoded()
					RecordShareDecoded()
					RecordSummary("passed")
					RecordMutation("set_subscore")
					RecordHTTPRequest("training", "GET", "200")
					RecordHTTPRequestDuration("training", "GET", "200", 3)
					RecordErrorByEndpoint("report", "GET", "client_error")
					RecordErrorByType("client_error", "medium")
					RecordErrorLatency("http", "client_error", 1)
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(12)
				}, ShouldNotPanic)
			})
		})

		Convey("When asking for the registry", func() {
			Convey("Then it should be the custom one", func() {
				So(GetRegistry(), ShouldEqual, customRegistry)
			})
		})
	})
}
