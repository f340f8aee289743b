// Package tasting defines the rubric of a blind tasting: which samples
// are on the table, which categories judges score, and what values are
// allowed. Samples and categories are injected configuration, not
// hardcoded domain knowledge.
package tasting

import (
	"fmt"
	"strings"
)

// Sample is one blind sample offered to judges. The label is opaque by
// design; judges never learn which cook it belongs to.
type Sample struct {
	ID    string
	Label string
}

// Category is one scoring dimension with its own maximum.
type Category struct {
	ID   string
	Name string
	Max  int
}

// Option applies a configuration option to the Rubric.
type Option func(*Rubric)

// WithSamples replaces the sample list.
func WithSamples(samples []Sample) Option {
	return func(r *Rubric) {
		if len(samples) > 0 {
			r.samples = append([]Sample(nil), samples...)
		}
	}
}

// WithCategories replaces the category list.
func WithCategories(categories []Category) Option {
	return func(r *Rubric) {
		if len(categories) > 0 {
			r.categories = append([]Category(nil), categories...)
		}
	}
}

// WithScoreMin sets the lowest allowed score value.
func WithScoreMin(min int) Option {
	return func(r *Rubric) {
		r.min = min
	}
}

// Rubric is the immutable scoring contract for one tasting.
type Rubric struct {
	samples    []Sample
	categories []Category
	min        int

	sampleByID   map[string]Sample
	categoryByID map[string]Category
}

// NewRubric creates a rubric with configuration options. Without
// options it describes the default event: five rib sets, five
// categories, scores 0..10.
func NewRubric(opts ...Option) *Rubric {
	r := &Rubric{
		samples: []Sample{
			{ID: "set-a", Label: "Set A"},
			{ID: "set-b", Label: "Set B"},
			{ID: "set-c", Label: "Set C"},
			{ID: "set-d", Label: "Set D"},
			{ID: "set-e", Label: "Set E"},
		},
		categories: []Category{
			{ID: "tenderness", Name: "Tenderness", Max: 10},
			{ID: "flavor", Name: "Flavor", Max: 10},
			{ID: "sauce", Name: "Sauce", Max: 10},
			{ID: "smoke", Name: "Smoke/Char", Max: 10},
			{ID: "appearance", Name: "Appearance", Max: 10},
		},
		min: 0,
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	r.sampleByID = make(map[string]Sample, len(r.samples))
	for _, s := range r.samples {
		r.sampleByID[s.ID] = s
	}
	r.categoryByID = make(map[string]Category, len(r.categories))
	for _, c := range r.categories {
		r.categoryByID[c.ID] = c
	}

	return r
}

// Samples returns the samples in display order.
func (r *Rubric) Samples() []Sample {
	return append([]Sample(nil), r.samples...)
}

// Categories returns the categories in display order.
func (r *Rubric) Categories() []Category {
	return append([]Category(nil), r.categories...)
}

// Min returns the lowest allowed score value.
func (r *Rubric) Min() int {
	return r.min
}

// CellCount returns samples x categories, the size of a complete sheet.
func (r *Rubric) CellCount() int {
	return len(r.samples) * len(r.categories)
}

// SampleByID looks up a sample.
func (r *Rubric) SampleByID(id string) (Sample, bool) {
	s, ok := r.sampleByID[id]
	return s, ok
}

// CategoryByID looks up a category.
func (r *Rubric) CategoryByID(id string) (Category, bool) {
	c, ok := r.categoryByID[id]
	return c, ok
}

// ValidateScore checks a single score against the rubric. A rejected
// score must never reach the store.
func (r *Rubric) ValidateScore(judgeName, sampleID, categoryID string, value int) error {
	if strings.TrimSpace(judgeName) == "" {
		return ErrMissingJudge
	}
	if _, ok := r.sampleByID[sampleID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSample, sampleID)
	}
	cat, ok := r.categoryByID[categoryID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)
	}
	if value < r.min || value > cat.Max {
		return fmt.Errorf("%w: %d not in [%d, %d] for %s", ErrValueOutOfRange, value, r.min, cat.Max, cat.ID)
	}
	return nil
}
