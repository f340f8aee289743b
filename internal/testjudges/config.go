package testjudges

import "time"

// Config holds configuration for the judge test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumJudges  int           // Number of judges to simulate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated sheets
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Rubric mirrors the tasting setup announced by the service
type Rubric struct {
	Samples    []SampleInfo   `json:"samples"`
	Categories []CategoryInfo `json:"categories"`
	ScoreMin   int            `json:"score_min"`
}

// SampleInfo is one blind sample in the rubric
type SampleInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategoryInfo is one scoring dimension in the rubric
type CategoryInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Max  int    `json:"max"`
}

// Sheet represents one judge's complete submission
type Sheet struct {
	SubmissionID string       `json:"submission_id"`
	Judge        string       `json:"judge"`
	Scores       []SheetScore `json:"scores"`
}

// SheetScore is one cell of a sheet
type SheetScore struct {
	Sample   string `json:"sample"`
	Category string `json:"category"`
	Value    int    `json:"value"`
}

// ResultRow represents one sample in the standings
type ResultRow struct {
	Rank       int                `json:"rank"`
	SampleID   string             `json:"sample_id"`
	Label      string             `json:"label"`
	Categories map[string]float64 `json:"categories"`
	Overall    float64            `json:"overall"`
	Total      float64            `json:"total"`
	Judges     int                `json:"judges"`
}

// AckResponse represents the response from sheet submission
type AckResponse struct {
	Status       string `json:"status"`
	Duplicate    bool   `json:"duplicate"`
	SubmissionID string `json:"submission_id"`
}

// Stats holds test statistics
type Stats struct {
	SheetsGenerated  int
	SheetsSubmitted  int
	SheetsSuccessful int
	SheetsDuplicate  int
	SheetsFailed     int
	SampleRowsRead   int
	StandingsRows    int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
