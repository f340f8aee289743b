package testjudges

import (
	"context"
	"fmt"
	"log"
)

// retrieveSampleRows fetches each sample's standing individually to
// exercise the single-sample endpoint.
func retrieveSampleRows(ctx context.Context, config *Config, rubric *Rubric, stats *Stats) ([]ResultRow, error) {
	log.Printf("🍖 Retrieving per-sample results for %d samples...", len(rubric.Samples))

	client := newHTTPClient(config.Timeout)

	rows := make([]ResultRow, 0, len(rubric.Samples))
	for _, s := range rubric.Samples {
		row, err := retrieveSingleSampleRow(ctx, client, config.BaseURL, s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get result for %s: %w", s.ID, err)
		}
		rows = append(rows, row)
	}

	stats.SampleRowsRead = len(rows)
	log.Printf("✅ Retrieved %d per-sample results", len(rows))

	return rows, nil
}

// retrieveSingleSampleRow retrieves the standing of a single sample.
func retrieveSingleSampleRow(ctx context.Context, client *HTTPClient, baseURL, sampleID string) (ResultRow, error) {
	url := fmt.Sprintf("%s/results/%s", baseURL, sampleID)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return ResultRow{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return ResultRow{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return ResultRow{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var row ResultRow
	if err := unmarshalJSON(body, &row); err != nil {
		return ResultRow{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return row, nil
}

// getStandings retrieves the full ranked standings.
func getStandings(ctx context.Context, config *Config, stats *Stats) ([]ResultRow, error) {
	log.Printf("🥇 Getting the full standings...")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/results"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var standings []ResultRow
	if err := unmarshalJSON(body, &standings); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.StandingsRows = len(standings)
	log.Printf("✅ Retrieved %d standings rows", len(standings))

	return standings, nil
}
