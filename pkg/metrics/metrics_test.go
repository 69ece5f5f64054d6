package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test_namespace")
			subsystemOpt := WithSubsystem("test_subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with a dedicated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})

			Convey("Then all metrics should be registered on it", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom naming", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording birth pipeline metrics", func() {
			Convey("Then recording should not panic", func() {
				So(RecordBirthProcessed, ShouldNotPanic)
				So(RecordBirthDuplicate, ShouldNotPanic)
				So(func() { RecordAssignmentLatency(12.5) }, ShouldNotPanic)
			})
		})

		Convey("When recording trait outcome metrics", func() {
			Convey("Then recording should not panic", func() {
				So(func() { RecordTraitsGranted("positive", 2) }, ShouldNotPanic)
				So(func() { RecordTraitsGranted("negative", 0) }, ShouldNotPanic)
				So(func() { RecordInbreedingDetected("severe") }, ShouldNotPanic)
				So(RecordAffinityDetected, ShouldNotPanic)
				So(RecordLegacyTalentGrant, ShouldNotPanic)
			})
		})

		Convey("When updating pipeline health gauges", func() {
			Convey("Then updating should not panic", func() {
				So(func() { UpdateQueueSize(10) }, ShouldNotPanic)
				So(func() { UpdateQueueCapacity(100) }, ShouldNotPanic)
				So(func() { UpdateQueueUtilization(0.1) }, ShouldNotPanic)
				So(RecordQueueEnqueue, ShouldNotPanic)
				So(RecordQueueDequeue, ShouldNotPanic)
				So(RecordQueueFullDrop, ShouldNotPanic)
				So(func() { UpdateWorkerCount(4) }, ShouldNotPanic)
				So(func() { RecordWorkerProcessingLatency(3.2) }, ShouldNotPanic)
				So(RecordWorkerError, ShouldNotPanic)
				So(func() { UpdateFoalsRegistered(7) }, ShouldNotPanic)
			})
		})

		Convey("When gathering the custom registry", func() {
			RecordBirthProcessed()
			families, err := GetRegistry().Gather()

			Convey("Then the recorded metrics should be present", func() {
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["sireline_breeding_births_processed_total"], ShouldBeTrue)
			})
		})
	})
}
