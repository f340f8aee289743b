package testjudges

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// fetchRubric downloads the tasting setup the service was started with.
func fetchRubric(ctx context.Context, config *Config) (*Rubric, error) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/rubric"

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

	var rubric Rubric
	if err := unmarshalJSON(body, &rubric); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(rubric.Samples) == 0 || len(rubric.Categories) == 0 {
		return nil, fmt.Errorf("rubric is empty")
	}
	return &rubric, nil
}

// submitSheets submits sheets concurrently using worker pools
func submitSheets(ctx context.Context, config *Config, sheets []Sheet, stats *Stats) error {
	log.Printf("📤 Submitting %d sheets with %d workers...", len(sheets), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/submissions"

	// Counters for statistics
	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	sheetChan := make(chan Sheet, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for sheet := range sheetChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleSheet(ctx, client, url, sheet)

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						atomic.AddInt64(&successful, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						succ := atomic.LoadInt64(&successful)
						dup := atomic.LoadInt64(&duplicate)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Progress: %d/%d submitted (success: %d, duplicate: %d, failed: %d)",
								total, len(sheets), succ, dup, fail)
						} else {
							fmt.Printf("\r📤 Submitted: %d/%d (success: %d, duplicate: %d, failed: %d)",
								total, len(sheets), succ, dup, fail)
						}
					}
				}
			}
		}()
	}

	// Send sheets to workers
	go func() {
		defer close(sheetChan)
		for _, sheet := range sheets {
			select {
			case <-ctx.Done():
				return
			case sheetChan <- sheet:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.SheetsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SheetsSuccessful = int(atomic.LoadInt64(&successful))
	stats.SheetsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.SheetsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`✅ Sheet submission completed:
   Successful: %d
   Duplicate: %d
   Failed: %d
`, stats.SheetsSuccessful, stats.SheetsDuplicate, stats.SheetsFailed)

	return nil
}

// submitSingleSheet submits a single sheet and returns the result
func submitSingleSheet(ctx context.Context, client *HTTPClient, url string, sheet Sheet) string {
	resp, err := client.Post(ctx, url, sheet)
	if err != nil {
		return "failed"
	}

	// Read response body
	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	// Parse response based on status code
	switch resp.StatusCode {
	case StatusCreated:
		// Created - new sheet
		var ack AckResponse
		if err := unmarshalJSON(body, &ack); err == nil && ack.Status == "recorded" {
			return "success"
		}
		return "success" // Assume success for 201 even if parsing fails
	case StatusOK:
		// OK - duplicate sheet
		var ack AckResponse
		if err := unmarshalJSON(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate" // Assume duplicate for 200 even if parsing fails
	default:
		// Error
		return "failed"
	}
}
