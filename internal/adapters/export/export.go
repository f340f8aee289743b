// Package export serializes the raw score set to structured text,
// one record per stored score. There is no import path; the artifact
// is for spreadsheets and archiving, not round-tripping.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/smokeoff/internal/domain/model"
)

// Format names accepted by the export endpoint.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Record is the exported shape of one stored score.
type Record struct {
	Judge        string `json:"judge"`
	Sample       string `json:"sample"`
	Category     string `json:"category"`
	Value        int    `json:"value"`
	SubmissionID string `json:"submission_id,omitempty"`
	RecordedAt   string `json:"recorded_at"`
}

func toRecord(sc model.Score) Record {
	return Record{
		Judge:        sc.JudgeName,
		Sample:       sc.SampleID,
		Category:     sc.CategoryID,
		Value:        sc.Value,
		SubmissionID: sc.SubmissionID,
		RecordedAt:   sc.RecordedAt.UTC().Format(time.RFC3339),
	}
}

// JSON renders scores as an indented JSON array, one element per score.
func JSON(scores []model.Score) ([]byte, error) {
	records := make([]Record, 0, len(scores))
	for _, sc := range scores {
		records = append(records, toRecord(sc))
	}
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json export: %w", err)
	}
	return out, nil
}

// CSV renders scores as a header row plus one row per score.
func CSV(scores []model.Score) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"judge", "sample", "category", "value", "submission_id", "recorded_at"}); err != nil {
		return nil, fmt.Errorf("encode csv header: %w", err)
	}
	for _, sc := range scores {
		rec := toRecord(sc)
		row := []string{rec.Judge, rec.Sample, rec.Category, strconv.Itoa(rec.Value), rec.SubmissionID, rec.RecordedAt}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("encode csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv export: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the HTTP content type for a format, defaulting
// to JSON for anything unknown.
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}
