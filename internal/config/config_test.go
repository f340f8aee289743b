package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewDefaults(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := New()

		Convey("Then the process defaults should be set", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.Storage, ShouldEqual, StorageMemory)
			So(cfg.SQLitePath, ShouldEqual, "smokeoff.db")
			So(cfg.DedupeSize, ShouldEqual, 10_000)
		})

		Convey("Then the default rubric should describe five rib sets", func() {
			So(cfg.Samples, ShouldHaveLength, 5)
			So(cfg.Samples[0].ID, ShouldEqual, "set-a")
			So(cfg.Samples[0].Label, ShouldEqual, "Set A")
			So(cfg.Samples[4].Label, ShouldEqual, "Set E")
		})

		Convey("And five categories scored 0..10", func() {
			So(cfg.Categories, ShouldHaveLength, 5)
			So(cfg.ScoreMin, ShouldEqual, 0)
			for _, cat := range cfg.Categories {
				So(cat.Max, ShouldEqual, 10)
			}
			So(cfg.Categories[3].Name, ShouldEqual, "Smoke/Char")
		})

		Convey("And the defaults should validate", func() {
			So(cfg.validate(), ShouldBeNil)
		})
	})
}
