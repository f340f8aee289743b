package testjudges

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/smokeoff/pkg/logger"
)

// Constants for random number generation.
const (
	temperamentDivisor = 6
)

// Judge temperament cases. Each judge scores every cell with the same
// bias so the standings end up with realistic spreads instead of
// uniform noise.
const (
	caseGenerousJudge = 0
	caseHarshJudge    = 1
	caseMiddlingJudge = 2
	caseFavoriteFirst = 3
	caseFavoriteLast  = 4
	caseUnpredictable = 5
)

// randomIntn returns a random int in [0, n) using crypto/rand.
func randomIntn(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateSheets creates one complete sheet per judge with unique judge names.
func generateSheets(ctx context.Context, config *Config, rubric *Rubric, stats *Stats) ([]Sheet, error) {
	logger.Get().Info(ctx, "generating sheets with unique judge names", logger.Int("numJudges", config.NumJudges))

	sheets := make([]Sheet, config.NumJudges)

	// Pre-allocate judge names to ensure uniqueness
	judgeNames := make([]string, config.NumJudges)
	for i := 0; i < config.NumJudges; i++ {
		judgeNames[i] = fmt.Sprintf("judge-%04d-%s", i, uuid.New().String()[:8])
	}

	// Generate sheets concurrently
	type sheetResult struct {
		index int
		sheet Sheet
		err   error
	}

	resultChan := make(chan sheetResult, config.NumJudges)

	// Use worker pool for sheet generation
	workerCount := minInt(config.Workers, config.NumJudges)
	sheetsPerWorker := config.NumJudges / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * sheetsPerWorker
		end := start + sheetsPerWorker
		if worker == workerCount-1 {
			end = config.NumJudges // Last worker gets remaining judges
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- sheetResult{index: i, err: ctx.Err()}
					return
				default:
					sheet := generateSingleSheet(rubric, judgeNames[i])
					resultChan <- sheetResult{index: i, sheet: sheet, err: nil}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumJudges; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during sheet generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate sheet %d: %w", result.index, result.err)
			}
			sheets[result.index] = result.sheet
		}
	}

	stats.SheetsGenerated = len(sheets)
	logger.Get().Info(ctx, "generated sheets successfully", logger.Int("count", len(sheets)))

	return sheets, nil
}

// generateSingleSheet fills every rubric cell for one judge.
func generateSingleSheet(rubric *Rubric, judgeName string) Sheet {
	temperament := randomIntn(temperamentDivisor)

	sheet := Sheet{
		SubmissionID: uuid.New().String(),
		Judge:        judgeName,
		Scores:       make([]SheetScore, 0, len(rubric.Samples)*len(rubric.Categories)),
	}
	for si, s := range rubric.Samples {
		for _, c := range rubric.Categories {
			sheet.Scores = append(sheet.Scores, SheetScore{
				Sample:   s.ID,
				Category: c.ID,
				Value:    generateCellValue(temperament, si, len(rubric.Samples), rubric.ScoreMin, c.Max),
			})
		}
	}
	return sheet
}

// generateCellValue produces an in-range value shaped by the judge's
// temperament. sampleIndex lets favorite-biased judges reward one end
// of the table.
func generateCellValue(temperament, sampleIndex, sampleCount, min, max int) int {
	span := max - min
	if span <= 0 {
		return min
	}

	switch temperament {
	case caseGenerousJudge:
		// Top third of the range
		return max - randomIntn(span/3+1)
	case caseHarshJudge:
		// Bottom third of the range
		return min + randomIntn(span/3+1)
	case caseMiddlingJudge:
		// Middle of the range
		return min + span/3 + randomIntn(span/3+1)
	case caseFavoriteFirst:
		// Earlier samples score higher
		bias := (sampleCount - sampleIndex) * span / (sampleCount + 1)
		return clampInt(min+bias+randomIntn(span/4+1), min, max)
	case caseFavoriteLast:
		// Later samples score higher
		bias := (sampleIndex + 1) * span / (sampleCount + 1)
		return clampInt(min+bias+randomIntn(span/4+1), min, max)
	default:
		// Anywhere in range
		return min + randomIntn(span+1)
	}
}

// clampInt bounds v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
