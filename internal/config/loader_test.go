package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		t.Setenv("SMOKEOFF_CONFIG", "")

		cfg, err := Load(context.Background())

		Convey("Then defaults should be returned", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.Storage, ShouldEqual, StorageMemory)
			So(cfg.Samples, ShouldHaveLength, 5)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given SMOKEOFF_ env overrides", t, func() {
		t.Setenv("SMOKEOFF_CONFIG", "")
		t.Setenv("SMOKEOFF_ADDR", ":7070")
		t.Setenv("SMOKEOFF_STORAGE", "sqlite")
		t.Setenv("SMOKEOFF_SQLITE_PATH", "tasting.db")
		t.Setenv("SMOKEOFF_LOG_LEVEL", "debug")

		cfg, err := Load(context.Background())

		Convey("Then env values should win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.Storage, ShouldEqual, StorageSQLite)
			So(cfg.SQLitePath, ShouldEqual, "tasting.db")
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})
}

func TestLoadFromFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "smokeoff.yaml")
		content := []byte(`
addr: ":8088"
score_min: 1
samples:
  - id: brisket-a
    label: Plate A
  - id: brisket-b
    label: Plate B
categories:
  - id: bark
    name: Bark
    max: 5
`)
		So(os.WriteFile(path, content, 0o600), ShouldBeNil)
		t.Setenv("SMOKEOFF_CONFIG", path)

		cfg, err := Load(context.Background())

		Convey("Then the file should replace the default rubric", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8088")
			So(cfg.ScoreMin, ShouldEqual, 1)
			So(cfg.Samples, ShouldHaveLength, 2)
			So(cfg.Samples[1].Label, ShouldEqual, "Plate B")
			So(cfg.Categories, ShouldHaveLength, 1)
			So(cfg.Categories[0].Max, ShouldEqual, 5)
		})
	})
}

func TestLoadRejectsInvalid(t *testing.T) {
	Convey("Given invalid configurations", t, func() {
		t.Setenv("SMOKEOFF_CONFIG", "")

		Convey("When storage backend is unknown", func() {
			t.Setenv("SMOKEOFF_STORAGE", "postgres")
			_, err := Load(context.Background())
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When addr is empty", func() {
			t.Setenv("SMOKEOFF_ADDR", "")
			cfg := New()
			cfg.Addr = ""
			So(errors.Is(cfg.validate(), ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When sample ids collide", func() {
			cfg := New()
			cfg.Samples = []Sample{{ID: "set-a", Label: "A"}, {ID: "set-a", Label: "B"}}
			So(errors.Is(cfg.validate(), ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When a category max does not exceed score_min", func() {
			cfg := New()
			cfg.Categories[0].Max = 0
			So(errors.Is(cfg.validate(), ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
