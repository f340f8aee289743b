// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Storage backend names accepted in Config.Storage.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Sample describes one blind sample offered to judges.
type Sample struct {
	// ID is the stable identifier used by the API, e.g. "set-a".
	ID string `koanf:"id"`
	// Label is the opaque display label shown to judges, e.g. "Set A".
	Label string `koanf:"label"`
}

// Category describes one scoring dimension.
type Category struct {
	// ID is the stable identifier used by the API, e.g. "tenderness".
	ID string `koanf:"id"`
	// Name is the display name, e.g. "Tenderness".
	Name string `koanf:"name"`
	// Max is the highest score a judge may give in this category.
	Max int `koanf:"max"`
}

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Storage selects the score store backend: memory or sqlite.
	Storage string `koanf:"storage"`

	// SQLitePath is the database file used when Storage is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// DedupeSize bounds the submission idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ScoreMin is the lowest score a judge may give in any category.
	ScoreMin int `koanf:"score_min"`

	// Samples lists the blind samples for this tasting, in display order.
	Samples []Sample `koanf:"samples"`

	// Categories lists the scoring dimensions, in display order.
	Categories []Category `koanf:"categories"`
}

// New creates a Config with the default tasting setup: five blind rib
// sets scored across five categories, each 0..10.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		Addr:       ":9080",
		Storage:    StorageMemory,
		SQLitePath: "smokeoff.db",
		DedupeSize: 10_000,
		ScoreMin:   0,
		Samples: []Sample{
			{ID: "set-a", Label: "Set A"},
			{ID: "set-b", Label: "Set B"},
			{ID: "set-c", Label: "Set C"},
			{ID: "set-d", Label: "Set D"},
			{ID: "set-e", Label: "Set E"},
		},
		Categories: []Category{
			{ID: "tenderness", Name: "Tenderness", Max: 10},
			{ID: "flavor", Name: "Flavor", Max: 10},
			{ID: "sauce", Name: "Sauce", Max: 10},
			{ID: "smoke", Name: "Smoke/Char", Max: 10},
			{ID: "appearance", Name: "Appearance", Max: 10},
		},
	}
}
