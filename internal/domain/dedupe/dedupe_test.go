package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/sireline/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When a birth event is recorded for the first time", func() {
			seen := d.SeenAndRecord(context.Background(), "birth-1")

			Convey("Then it should be reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same event is recorded again", func() {
			d.SeenAndRecord(context.Background(), "birth-1")
			seen := d.SeenAndRecord(context.Background(), "birth-1")

			Convey("Then it should be reported as already seen", func() {
				So(seen, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When an event is unrecorded", func() {
			d.SeenAndRecord(context.Background(), "birth-1")
			d.Unrecord(context.Background(), "birth-1")

			Convey("Then it should be retryable", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(context.Background(), "birth-1"), ShouldBeFalse)
			})
		})

		Convey("When unrecording an unknown event", func() {
			d.Unrecord(context.Background(), "never-seen")

			Convey("Then nothing should change", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When more events than the bound are recorded", func() {
			for i := 0; i < 5; i++ {
				d.SeenAndRecord(context.Background(), fmt.Sprintf("birth-%d", i))
			}

			Convey("Then the size should stay at the bound", func() {
				So(d.Size(), ShouldEqual, 3)
			})

			Convey("Then the oldest events should have been evicted", func() {
				So(d.SeenAndRecord(context.Background(), "birth-0"), ShouldBeFalse)
				So(d.SeenAndRecord(context.Background(), "birth-4"), ShouldBeTrue)
			})
		})

		Convey("When eviction follows an unrecord", func() {
			d.SeenAndRecord(context.Background(), "birth-a")
			d.SeenAndRecord(context.Background(), "birth-b")
			d.Unrecord(context.Background(), "birth-a")
			d.SeenAndRecord(context.Background(), "birth-c")
			d.SeenAndRecord(context.Background(), "birth-d")
			d.SeenAndRecord(context.Background(), "birth-e")

			Convey("Then live entries should be evicted in insertion order", func() {
				So(d.Size(), ShouldEqual, 3)
				// birth-b was the oldest live entry and had to go.
				So(d.SeenAndRecord(context.Background(), "birth-e"), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

		Convey("When many events are recorded", func() {
			for i := 0; i < 1000; i++ {
				d.SeenAndRecord(context.Background(), fmt.Sprintf("birth-%d", i))
			}

			Convey("Then nothing should be evicted", func() {
				So(d.Size(), ShouldEqual, 1000)
			})
		})
	})

	Convey("Given concurrent recorders", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When the same id races across goroutines", func() {
			const goroutines = 20
			newCount := 0
			var mu sync.Mutex
			var wg sync.WaitGroup
			wg.Add(goroutines)
			for i := 0; i < goroutines; i++ {
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(context.Background(), "birth-race") {
						mu.Lock()
						newCount++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one recorder should win", func() {
				So(newCount, ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}
