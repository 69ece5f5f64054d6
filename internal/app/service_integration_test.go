package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	service "github.com/okian/sireline/internal/app"
	"github.com/okian/sireline/internal/domain/model"
	"github.com/okian/sireline/internal/domain/traits"
	. "github.com/smartystreets/goconvey/convey"
)

func racingAncestors(n int) model.Lineage {
	lineage := make(model.Lineage, 0, n)
	for i := 0; i < n; i++ {
		lineage = append(lineage, model.Ancestor{
			ID:         fmt.Sprintf("racer-%d", i),
			Discipline: "Racing",
		})
	}
	return lineage
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service with full integration", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(1000),
			service.WithDedupeSize(500),
			service.WithRandFloat(func() float64 { return 0 }), // legacy talent always granted
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And the service should be running", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})
		})

		Convey("When processing births end-to-end", func() {
			err := svc.Start(ctx)
			So(err, ShouldBeNil)

			events := []model.BirthEvent{
				{
					EventID: "birth-1",
					FoalID:  "foal-calm",
					Context: model.BirthContext{
						StressLevel: 10,
						FeedQuality: 90,
					},
				},
				{
					EventID: "birth-2",
					FoalID:  "foal-stressed",
					Context: model.BirthContext{
						StressLevel: 95,
						FeedQuality: 50,
					},
				},
				{
					EventID: "birth-3",
					FoalID:  "foal-inbred",
					Context: model.BirthContext{
						StressLevel: 50,
						FeedQuality: 50,
						Lineage: model.Lineage{
							{ID: "shared-sire"},
							{ID: "shared-sire"},
							{ID: "shared-sire"},
							{ID: "shared-sire"},
						},
					},
				},
				{
					EventID: "birth-4",
					FoalID:  "foal-legacy",
					Context: model.BirthContext{
						StressLevel: 50,
						FeedQuality: 50,
						Lineage:     racingAncestors(4),
					},
				},
			}

			// Enqueue all events
			for _, event := range events {
				success := svc.Enqueue(ctx, event)
				So(success, ShouldBeTrue)
			}

			// Give workers time to process
			time.Sleep(500 * time.Millisecond)

			Convey("Then all foals should have recorded outcomes", func() {
				calm, err := svc.Outcome(ctx, "foal-calm")
				So(err, ShouldBeNil)
				So(calm.HasTrait(traits.Resilient), ShouldBeTrue)
				So(calm.HasTrait(traits.PeopleTrusting), ShouldBeTrue)

				stressed, err := svc.Outcome(ctx, "foal-stressed")
				So(err, ShouldBeNil)
				So(stressed.HasTrait(traits.Nervous), ShouldBeTrue)

				inbred, err := svc.Outcome(ctx, "foal-inbred")
				So(err, ShouldBeNil)
				So(inbred.HasTrait(traits.Fragile), ShouldBeTrue)
				So(inbred.HasTrait(traits.Reactive), ShouldBeTrue)

				legacy, err := svc.Outcome(ctx, "foal-legacy")
				So(err, ShouldBeNil)
				So(legacy.HasTrait(traits.AffinityTrait("Racing")), ShouldBeTrue)
				So(legacy.HasTrait(traits.LegacyTalent), ShouldBeTrue)
			})

			Convey("And duplicate events should be accepted without reprocessing", func() {
				success := svc.Enqueue(ctx, events[0])
				So(success, ShouldBeTrue)

				stats := svc.GetStats()
				So(stats["totalFoals"], ShouldEqual, 4)
			})

			Convey("And trait counts should aggregate across foals", func() {
				counts := svc.TraitCounts(ctx)
				So(counts[string(traits.Resilient)], ShouldBeGreaterThanOrEqualTo, 1)
				So(counts[string(traits.Nervous)], ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When assigning synchronously", func() {
			err := svc.Start(ctx)
			So(err, ShouldBeNil)

			outcome, err := svc.AssignNow(ctx, "foal-sync", model.BirthContext{
				StressLevel: 5,
				FeedQuality: 95,
			})

			Convey("Then the outcome should be returned and recorded", func() {
				So(err, ShouldBeNil)
				So(outcome.HasTrait(traits.Resilient), ShouldBeTrue)

				stored, err := svc.Outcome(ctx, "foal-sync")
				So(err, ShouldBeNil)
				So(stored.PositiveTraits(), ShouldResemble, outcome.PositiveTraits())
			})
		})

		Convey("When querying lineage affinity directly", func() {
			err := svc.Start(ctx)
			So(err, ShouldBeNil)

			lineage := racingAncestors(3)

			Convey("Then the dominant affinity should be reported", func() {
				affinity := svc.CheckAffinity(lineage)
				So(affinity.Affinity, ShouldBeTrue)
				So(affinity.Discipline, ShouldEqual, "Racing")
				So(affinity.Count, ShouldEqual, 3)
			})

			Convey("And the detailed breakdown should be available", func() {
				detail := svc.CheckAffinityDetailed(lineage)
				So(detail.TotalAnalyzed, ShouldEqual, 3)
				So(detail.Breakdown["Racing"], ShouldEqual, 3)
			})

			Convey("And specific affinity checks should honor the requirement", func() {
				specific := svc.CheckSpecificAffinity(lineage, "Racing", 5)
				So(specific.HasAffinity, ShouldBeFalse)
				So(specific.Count, ShouldEqual, 3)
				So(specific.Required, ShouldEqual, 5)
			})
		})

		Convey("When detecting inbreeding directly", func() {
			err := svc.Start(ctx)
			So(err, ShouldBeNil)

			report := svc.DetectInbreeding(model.Lineage{
				{ID: "a"}, {ID: "a"}, {ID: "b"},
			})

			Convey("Then duplicates should be reported", func() {
				So(report.Detected, ShouldBeTrue)
				So(report.MaxDuplicateCount, ShouldEqual, 2)
				So(report.DuplicateIDs, ShouldResemble, []string{"a"})
			})
		})
	})
}

func TestServiceGracefulDrain(t *testing.T) {
	Convey("Given a started service with queued births", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(1000),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		for i := 0; i < 50; i++ {
			event := model.BirthEvent{
				EventID: fmt.Sprintf("drain-%d", i),
				FoalID:  fmt.Sprintf("foal-drain-%d", i),
				Context: model.BirthContext{StressLevel: 50, FeedQuality: 50},
			}
			So(svc.Enqueue(ctx, event), ShouldBeTrue)
		}

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then every queued birth should have been processed", func() {
				for i := 0; i < 50; i++ {
					_, err := svc.Outcome(ctx, fmt.Sprintf("foal-drain-%d", i))
					So(err, ShouldBeNil)
				}
			})
		})
	})
}
