package registry_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	registry "github.com/okian/sireline/internal/adapters/registry"
	traits "github.com/okian/sireline/internal/domain/traits"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		ctx := context.Background()
		store := registry.NewMemoryStore(ctx)

		Convey("When recording a foal outcome", func() {
			outcome := traits.Outcome{
				Positive: []traits.Name{traits.Resilient},
				Negative: []traits.Name{traits.Nervous},
			}
			err := store.Record(ctx, "foal-1", outcome)

			Convey("Then it should be retrievable", func() {
				So(err, ShouldBeNil)
				got, err := store.Outcome(ctx, "foal-1")
				So(err, ShouldBeNil)
				So(got.PositiveTraits(), ShouldResemble, []string{"resilient"})
				So(got.NegativeTraits(), ShouldResemble, []string{"nervous"})
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("And the returned outcome should be a copy", func() {
				got, _ := store.Outcome(ctx, "foal-1")
				got.Positive[0] = traits.Name("mutated")

				again, _ := store.Outcome(ctx, "foal-1")
				So(again.PositiveTraits(), ShouldResemble, []string{"resilient"})
			})
		})

		Convey("When recording the same foal twice", func() {
			So(store.Record(ctx, "foal-1", traits.Outcome{}), ShouldBeNil)
			err := store.Record(ctx, "foal-1", traits.Outcome{})

			Convey("Then the second record should fail", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, registry.ErrDuplicateFoal), ShouldBeTrue)
			})
		})

		Convey("When looking up an unknown foal", func() {
			_, err := store.Outcome(ctx, "missing")

			Convey("Then it should report not found", func() {
				So(errors.Is(err, registry.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When aggregating trait counts", func() {
			So(store.Record(ctx, "foal-1", traits.Outcome{
				Positive: []traits.Name{traits.Resilient, traits.PeopleTrusting},
			}), ShouldBeNil)
			So(store.Record(ctx, "foal-2", traits.Outcome{
				Positive: []traits.Name{traits.Resilient},
				Hidden:   []traits.Name{traits.LegacyTalent},
			}), ShouldBeNil)

			counts := store.TraitCounts(ctx)

			Convey("Then counts should sum across foals", func() {
				So(counts["resilient"], ShouldEqual, 2)
				So(counts["people_trusting"], ShouldEqual, 1)
				So(counts["legacy_talent"], ShouldEqual, 1)
			})
		})

		Convey("When recording from many goroutines", func() {
			const foals = 50
			var wg sync.WaitGroup
			wg.Add(foals)
			for i := 0; i < foals; i++ {
				go func(i int) {
					defer wg.Done()
					_ = store.Record(ctx, fmt.Sprintf("foal-%d", i), traits.Outcome{
						Positive: []traits.Name{traits.Resilient},
					})
				}(i)
			}
			wg.Wait()

			Convey("Then every foal should be registered once", func() {
				So(store.Count(ctx), ShouldEqual, foals)
				So(store.TraitCounts(ctx)["resilient"], ShouldEqual, foals)
			})
		})
	})
}
