package testjudges

import (
	"context"
	"fmt"
	"log"
	"math"
)

// Totals within this distance count as equal; server means are float64
// and the expectation is recomputed locally from the same integers.
const totalEpsilon = 1e-6

// verifyResults checks the standings against a local recomputation of
// the submitted sheets.
func verifyResults(ctx context.Context, config *Config, rubric *Rubric, sheets []Sheet, sampleRows, standings []ResultRow, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	if len(standings) == 0 {
		return fmt.Errorf("no standings to verify")
	}
	if len(standings) != len(rubric.Samples) {
		return fmt.Errorf("standings have %d rows, rubric has %d samples", len(standings), len(rubric.Samples))
	}

	if err := verifyStandingsOrder(standings); err != nil {
		return fmt.Errorf("standings order: %w", err)
	}
	log.Println("✅ Standings order verified")

	expected := computeExpectedTotals(rubric, sheets)
	if err := verifyTotals(standings, expected); err != nil {
		return fmt.Errorf("standings totals: %w", err)
	}
	log.Println("✅ Standings totals match local recomputation")

	if err := verifySampleRowConsistency(sampleRows, standings); err != nil {
		log.Printf("⚠️  Per-sample consistency warning: %v", err)
	} else {
		log.Println("✅ Per-sample results consistent with standings")
	}

	displayStandings(standings, config.Verbose)

	log.Println("✅ Result verification completed")
	return nil
}

// verifyStandingsOrder checks ranks are sequential and totals never increase.
func verifyStandingsOrder(standings []ResultRow) error {
	for i, row := range standings {
		if row.Rank != i+1 {
			return fmt.Errorf("row %d has rank %d, want %d", i, row.Rank, i+1)
		}
		if i > 0 && row.Total > standings[i-1].Total+totalEpsilon {
			return fmt.Errorf("row %d total %.3f exceeds row %d total %.3f",
				i, row.Total, i-1, standings[i-1].Total)
		}
	}
	return nil
}

// computeExpectedTotals recomputes each sample's total from the sheets:
// the sum over categories of the mean value in that category.
func computeExpectedTotals(rubric *Rubric, sheets []Sheet) map[string]float64 {
	type cell struct{ sample, category string }
	sums := make(map[cell]int)
	counts := make(map[cell]int)
	for _, sheet := range sheets {
		for _, sc := range sheet.Scores {
			k := cell{sc.Sample, sc.Category}
			sums[k] += sc.Value
			counts[k]++
		}
	}

	expected := make(map[string]float64, len(rubric.Samples))
	for _, s := range rubric.Samples {
		total := 0.0
		for _, c := range rubric.Categories {
			k := cell{s.ID, c.ID}
			if counts[k] > 0 {
				total += float64(sums[k]) / float64(counts[k])
			}
		}
		expected[s.ID] = total
	}
	return expected
}

// verifyTotals compares served totals to the local expectation.
func verifyTotals(standings []ResultRow, expected map[string]float64) error {
	for _, row := range standings {
		want, ok := expected[row.SampleID]
		if !ok {
			return fmt.Errorf("unexpected sample %q in standings", row.SampleID)
		}
		if math.Abs(row.Total-want) > totalEpsilon {
			return fmt.Errorf("sample %q total %.6f, want %.6f", row.SampleID, row.Total, want)
		}
	}
	return nil
}

// verifySampleRowConsistency checks single-sample reads against the
// standings rows.
func verifySampleRowConsistency(sampleRows, standings []ResultRow) error {
	byID := make(map[string]ResultRow, len(standings))
	for _, row := range standings {
		byID[row.SampleID] = row
	}
	for _, row := range sampleRows {
		full, ok := byID[row.SampleID]
		if !ok {
			return fmt.Errorf("sample %q missing from standings", row.SampleID)
		}
		if math.Abs(row.Total-full.Total) > totalEpsilon {
			return fmt.Errorf("sample %q total differs: %.6f vs %.6f", row.SampleID, row.Total, full.Total)
		}
		if row.Rank != full.Rank {
			return fmt.Errorf("sample %q rank differs: %d vs %d", row.SampleID, row.Rank, full.Rank)
		}
	}
	return nil
}

// displayStandings shows the final table.
func displayStandings(standings []ResultRow, verbose bool) {
	log.Printf("🏆 Final standings:")
	for _, row := range standings {
		log.Printf("   %d. %s - Total: %.2f (overall %.2f, %d judges)",
			row.Rank, row.Label, row.Total, row.Overall, row.Judges)
	}

	if verbose && len(standings) > 0 {
		spread := standings[0].Total - standings[len(standings)-1].Total
		log.Printf(`📊 Standings statistics:
   Winner: %s
   Spread: %.3f
`, standings[0].Label, spread)
	}
}
