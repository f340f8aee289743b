// Package model contains domain models passed between layers.
package model

import "time"

// Score represents one judge's rating of one sample in one category.
// At most one Score exists per (judge, sample, category); re-recording
// the same cell replaces the previous value.
type Score struct {
	JudgeName    string    // judge identifier; no authentication, just a name
	SampleID     string    // blind sample identifier, e.g. "set-a"
	CategoryID   string    // scoring dimension identifier, e.g. "flavor"
	Value        int       // integer score within the rubric range
	SubmissionID string    // sheet the score arrived with, empty for single scores
	RecordedAt   time.Time // server-side receipt time
}

// Key identifies the store slot a score occupies.
func (s Score) Key() Key {
	return Key{JudgeName: s.JudgeName, SampleID: s.SampleID, CategoryID: s.CategoryID}
}

// Key is the uniqueness key for stored scores.
type Key struct {
	JudgeName  string
	SampleID   string
	CategoryID string
}

// Submission is one judge's complete sheet covering every sample and
// category. SubmissionID is the idempotency key for replays.
type Submission struct {
	SubmissionID string
	JudgeName    string
	Scores       []Score
	SubmittedAt  time.Time
}
