package config_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/okian/sireline/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.MetricsAddr, convey.ShouldEqual, "")
			convey.So(cfg.BirthQueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.AffinityThreshold, convey.ShouldEqual, 3)
			convey.So(cfg.LegacyTalentMin, convey.ShouldEqual, 4)
			convey.So(cfg.LegacyTalentChance, convey.ShouldEqual, 0.25)
			convey.So(cfg.StressCalmMax, convey.ShouldEqual, 20)
			convey.So(cfg.FeedRichMin, convey.ShouldEqual, 80)
			convey.So(cfg.StressHighMin, convey.ShouldEqual, 80)
			convey.So(cfg.FeedPoorMax, convey.ShouldEqual, 30)
			convey.So(cfg.ModerateAt, convey.ShouldEqual, 2)
			convey.So(cfg.SevereAt, convey.ShouldEqual, 4)
		})
	})
}
