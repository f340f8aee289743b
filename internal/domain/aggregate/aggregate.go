// Package aggregate turns the raw score set into the ranked results
// view. Everything here is a pure function of its inputs: no side
// effects, identical output for identical input, recomputed on demand
// rather than persisted.
package aggregate

import (
	"sort"

	"github.com/okian/smokeoff/internal/domain/model"
	"github.com/okian/smokeoff/internal/domain/tasting"
	"github.com/okian/smokeoff/internal/domain/types"
)

// sampleTally accumulates per-sample sums while walking the score set.
type sampleTally struct {
	categorySum   map[string]float64
	categoryCount map[string]int
	valueSum      float64
	valueCount    int
	judges        map[string]bool
}

// Compute aggregates scores into one ranked row per rubric sample.
// Every sample appears even with no scores yet. Rows are ordered by
// total descending; equal totals keep a deterministic label order.
func Compute(r *tasting.Rubric, scores []model.Score) []types.SampleResult {
	tallies := make(map[string]*sampleTally, len(r.Samples()))
	for _, s := range r.Samples() {
		tallies[s.ID] = &sampleTally{
			categorySum:   make(map[string]float64),
			categoryCount: make(map[string]int),
			judges:        make(map[string]bool),
		}
	}

	for _, sc := range scores {
		t, ok := tallies[sc.SampleID]
		if !ok {
			// Scores outside the rubric never reach the store; a
			// rubric change under a live store can orphan rows, skip them.
			continue
		}
		t.categorySum[sc.CategoryID] += float64(sc.Value)
		t.categoryCount[sc.CategoryID]++
		t.valueSum += float64(sc.Value)
		t.valueCount++
		t.judges[sc.JudgeName] = true
	}

	results := make([]types.SampleResult, 0, len(tallies))
	for _, s := range r.Samples() {
		t := tallies[s.ID]
		row := types.SampleResult{
			SampleID:   s.ID,
			Label:      s.Label,
			Categories: make(map[string]float64, len(r.Categories())),
			Judges:     len(t.judges),
		}
		for _, c := range r.Categories() {
			mean := 0.0
			if n := t.categoryCount[c.ID]; n > 0 {
				mean = t.categorySum[c.ID] / float64(n)
			}
			row.Categories[c.ID] = mean
			row.Total += mean
		}
		if t.valueCount > 0 {
			row.Overall = t.valueSum / float64(t.valueCount)
		}
		results = append(results, row)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Total != results[j].Total {
			return results[i].Total > results[j].Total
		}
		return results[i].Label < results[j].Label
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return results
}
