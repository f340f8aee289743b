// Package types contains common types used across the application
package types

// SampleResult represents one aggregated row of the results view.
type SampleResult struct {
	Rank       int                `json:"rank"`
	SampleID   string             `json:"sample_id"`
	Label      string             `json:"label"`
	Categories map[string]float64 `json:"categories"` // category id -> mean
	Overall    float64            `json:"overall"`    // mean across every stored score for the sample
	Total      float64            `json:"total"`      // sum of per-category means
	Judges     int                `json:"judges"`     // distinct judges who scored the sample
}
