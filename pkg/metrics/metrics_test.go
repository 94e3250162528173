package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "slugger")
				So(manager.subsystem, ShouldEqual, "dashboard")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("charts"),
				WithPrometheusRegistry(registry),
			)
			manager.chartRenders.WithLabelValues("svg").Inc()

			Convey("Then collectors use the custom naming", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_charts_chart_renders_total")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})

		Convey("When empty options are given", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "slugger")
				So(manager.subsystem, ShouldEqual, "dashboard")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording dataset metrics", func() {
			before := testutil.ToFloat64(globalManager.datasetLoads.WithLabelValues("success"))
			RecordDatasetLoad(true, 12)
			RecordDatasetLoad(false, 3)
			UpdateDatasetPlayers("all", 5)
			UpdateDatasetPlayers("qualified", 3)
			RecordDatasetDuplicates(2)

			Convey("Then counters and gauges move", func() {
				So(testutil.ToFloat64(globalManager.datasetLoads.WithLabelValues("success")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.datasetPlayers.WithLabelValues("qualified")), ShouldEqual, 3)
			})
		})

		Convey("When recording engine and chart metrics", func() {
			before := testutil.ToFloat64(globalManager.chartRenders.WithLabelValues("png"))
			RecordPercentileComputation("all", 0.4)
			RecordPercentileNull("OPS")
			RecordChartRender("png", 8)
			RecordChartSkippedMetrics(1)

			Convey("Then the render counter is labelled by format", func() {
				So(testutil.ToFloat64(globalManager.chartRenders.WithLabelValues("png")), ShouldEqual, before+1)
			})
		})

		Convey("When recording HTTP, error and system metrics", func() {
			So(func() {
				RecordHTTPRequest("/api/players", "GET", "200")
				RecordHTTPRequestDuration("/api/players", "GET", "200", 1.5)
				RecordErrorByComponent("repository", "malformed")
				RecordErrorByEndpoint("/api/percentiles", "GET", "not_found")
				RecordSmokeCheck("defaults", true)
				RecordSmokeCheck("floor", false)
				UpdateSystemMemoryUsage(1024 * 1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.2)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordChartRender("svg", 1)

		Convey("Then it exposes the dashboard collectors only", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "slugger_dashboard_"), ShouldBeTrue)
			}
		})
	})
}
