package testjudges

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/smokeoff/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete judge test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting smokeoff judge test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("judges", config.NumJudges),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the rubric the service was started with
	rubric, err := fetchRubric(ctx, config)
	if err != nil {
		return fmt.Errorf("rubric fetch failed: %w", err)
	}
	logger.Get().Info(ctx, "fetched rubric",
		logger.Int("samples", len(rubric.Samples)),
		logger.Int("categories", len(rubric.Categories)))

	// Step 3: Generate sheets
	sheets, err := generateSheets(ctx, config, rubric, stats)
	if err != nil {
		return fmt.Errorf("sheet generation failed: %w", err)
	}

	// Step 4: Submit sheets concurrently
	if err := submitSheets(ctx, config, sheets, stats); err != nil {
		return fmt.Errorf("sheet submission failed: %w", err)
	}

	// Step 5: Short settle before reading gauges and standings
	logger.Get().Info(ctx, "waiting before reading standings")
	time.Sleep(SettleDelay)

	// Step 6: Retrieve per-sample results
	sampleRows, err := retrieveSampleRows(ctx, config, rubric, stats)
	if err != nil {
		return fmt.Errorf("per-sample retrieval failed: %w", err)
	}

	// Step 7: Get the full standings
	standings, err := getStandings(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("standings retrieval failed: %w", err)
	}

	// Step 8: Verify results
	if err := verifyResults(ctx, config, rubric, sheets, sampleRows, standings, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 9: Save sheets to file
	if err := saveSheetsToFile(ctx, config, sheets); err != nil {
		logger.Get().Warn(ctx, "failed to save sheets to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveSheetsToFile saves the generated sheets to a JSON file.
func saveSheetsToFile(ctx context.Context, config *Config, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_sheets_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write sheets to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, sheet := range sheets {
		jsonData, err := marshalJSON(sheet)
		if err != nil {
			return fmt.Errorf("failed to marshal sheet %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write sheet %d: %w", i, err)
		}

		// Add comma except for last sheet
		if i < len(sheets)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "sheets saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, sheetsPerSecond float64

	if stats.SheetsSubmitted > 0 {
		successRate = float64(stats.SheetsSuccessful) / float64(stats.SheetsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		sheetsPerSecond = float64(stats.SheetsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("sheetsGenerated", stats.SheetsGenerated),
		logger.Int("sheetsSubmitted", stats.SheetsSubmitted),
		logger.Int("sheetsSuccessful", stats.SheetsSuccessful),
		logger.Int("sheetsDuplicate", stats.SheetsDuplicate),
		logger.Int("sheetsFailed", stats.SheetsFailed),
		logger.Int("sampleRowsRead", stats.SampleRowsRead),
		logger.Int("standingsRows", stats.StandingsRows),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("sheetsPerSecond", sheetsPerSecond))
}
