package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a fresh metrics manager", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(reg))

		Convey("Then it should carry the default configuration", func() {
			So(m.namespace, ShouldEqual, "smokeoff")
			So(m.subsystem, ShouldEqual, "tasting")
			So(m.enabled, ShouldBeTrue)
			So(m.refreshInterval, ShouldEqual, defaultRefreshInterval)
		})

		Convey("And all metric families should be initialized", func() {
			So(m.scoresRecorded, ShouldNotBeNil)
			So(m.submissionsTotal, ShouldNotBeNil)
			So(m.submissionsDuplicate, ShouldNotBeNil)
			So(m.validationFailures, ShouldNotBeNil)
			So(m.aggregationDuration, ShouldNotBeNil)
			So(m.storedScores, ShouldNotBeNil)
			So(m.judgesTotal, ShouldNotBeNil)
			So(m.exportsTotal, ShouldNotBeNil)
			So(m.httpRequests, ShouldNotBeNil)
			So(m.httpRequestDuration, ShouldNotBeNil)
			So(m.storageErrors, ShouldNotBeNil)
		})
	})
}

func TestManagerOptions(t *testing.T) {
	Convey("Given manager options", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithPrometheusRegistry(reg),
			WithNamespace("custom"),
			WithSubsystem("sub"),
			WithHistogramBuckets([]float64{1, 2, 3}),
			WithMetricsEnabled(false),
			WithRefreshInterval(time.Minute),
			WithCustomLabels(map[string]string{"env": "test"}),
		)

		Convey("Then the options should be applied", func() {
			So(m.namespace, ShouldEqual, "custom")
			So(m.subsystem, ShouldEqual, "sub")
			So(m.histogramBuckets, ShouldResemble, []float64{1, 2, 3})
			So(m.enabled, ShouldBeFalse)
			So(m.refreshInterval, ShouldEqual, time.Minute)
			So(m.customLabels["env"], ShouldEqual, "test")
		})

		Convey("And empty option values should be ignored", func() {
			m2 := NewManager(
				WithPrometheusRegistry(reg),
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithRefreshInterval(0),
			)
			So(m2.namespace, ShouldEqual, "smokeoff")
			So(m2.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			So(m2.refreshInterval, ShouldEqual, defaultRefreshInterval)
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("Then recording helpers should not panic", func() {
			So(func() {
				RecordScoreRecorded()
				RecordSubmission()
				RecordSubmissionDuplicate()
				RecordValidationFailure()
				RecordAggregationDuration(1.5)
				UpdateStoredScores(25)
				UpdateJudgesTotal(3)
				RecordExport("csv")
				RecordExport("json")
				RecordStorageError()
				RecordHTTPRequest("results", "GET", "200")
				RecordHTTPRequestDuration("results", "GET", "200", 2.5)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("scores", "POST", "client_error")
				RecordErrorLatency("http", "client_error", 0.4)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
			}, ShouldNotPanic)
		})

		Convey("And the custom registry should gather metrics", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
