// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/smokeoff/internal/adapters/export"
	repository "github.com/okian/smokeoff/internal/adapters/repository"
	"github.com/okian/smokeoff/internal/domain/aggregate"
	"github.com/okian/smokeoff/internal/domain/dedupe"
	"github.com/okian/smokeoff/internal/domain/model"
	"github.com/okian/smokeoff/internal/domain/tasting"
	"github.com/okian/smokeoff/internal/domain/types"
	"github.com/okian/smokeoff/pkg/logger"
	"github.com/okian/smokeoff/pkg/metrics"
)

// Service implements the API dependencies for the tasting system.
// Writes are synchronous: a score is validated, upserted into the
// store, and acknowledged in the request path; results are recomputed
// from the raw score set on every read.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	deduper dedupe.Deduper
	rubric  *tasting.Rubric

	// Configuration
	storage    string
	sqlitePath string
	dedupeSize int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRubric sets the tasting rubric.
func WithRubric(r *tasting.Rubric) Option {
	return func(s *Service) {
		if r != nil {
			s.rubric = r
		}
	}
}

// WithStorage selects the score store backend and, for sqlite, its path.
func WithStorage(backend, sqlitePath string) Option {
	return func(s *Service) {
		if backend != "" {
			s.storage = backend
		}
		if sqlitePath != "" {
			s.sqlitePath = sqlitePath
		}
	}
}

// WithDedupeSize bounds the submission idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rubric:     tasting.NewRubric(),
		storage:    "memory",
		dedupeSize: 10_000,
		logger:     nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting tasting service...")

	switch s.storage {
	case "sqlite":
		store, err := repository.OpenSQLite(s.sqlitePath)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		s.store = store
		s.logger.Info(ctx, "using sqlite store", logger.String("path", s.sqlitePath))
	default:
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory store")
	}

	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)

	s.started = true
	s.logger.Info(ctx, "tasting service started",
		logger.Int("samples", len(s.rubric.Samples())),
		logger.Int("categories", len(s.rubric.Categories())),
		logger.String("storage", s.storage),
	)
	s.refreshGauges(ctx)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping tasting service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error(ctx, "closing score store failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "tasting service stopped")
}

// Rubric exposes the injected tasting rubric to the API layer.
func (s *Service) Rubric() *tasting.Rubric {
	return s.rubric
}

// RecordScore validates and upserts one score. A score that fails
// rubric validation never reaches the store.
func (s *Service) RecordScore(ctx context.Context, sc model.Score) error {
	if err := s.rubric.ValidateScore(sc.JudgeName, sc.SampleID, sc.CategoryID, sc.Value); err != nil {
		metrics.RecordValidationFailure()
		return err
	}
	if sc.RecordedAt.IsZero() {
		sc.RecordedAt = time.Now().UTC()
	}
	if err := s.store.Record(ctx, sc); err != nil {
		metrics.RecordStorageError()
		return err
	}
	metrics.RecordScoreRecorded()
	s.refreshGauges(ctx)

	s.logger.Debug(ctx, "score recorded",
		logger.String("judge", sc.JudgeName),
		logger.String("sample", sc.SampleID),
		logger.String("category", sc.CategoryID),
		logger.Int("value", sc.Value),
	)
	return nil
}

// RecordSubmission validates and stores one judge's complete sheet.
// Returns true when the submission ID was already seen; a duplicate
// leaves the store untouched.
func (s *Service) RecordSubmission(ctx context.Context, sub model.Submission) (bool, error) {
	if err := s.rubric.ValidateSubmission(sub); err != nil {
		metrics.RecordValidationFailure()
		return false, err
	}

	if sub.SubmissionID != "" && s.deduper.SeenAndRecord(ctx, sub.SubmissionID) {
		metrics.RecordSubmissionDuplicate()
		s.logger.Debug(ctx, "duplicate submission detected, skipping",
			logger.String("submissionID", sub.SubmissionID),
			logger.String("judge", sub.JudgeName),
		)
		return true, nil
	}

	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	for _, sc := range sub.Scores {
		sc.SubmissionID = sub.SubmissionID
		sc.RecordedAt = sub.SubmittedAt
		if err := s.store.Record(ctx, sc); err != nil {
			// Roll back the "seen" status so the judge can retry.
			if sub.SubmissionID != "" {
				s.deduper.Unrecord(ctx, sub.SubmissionID)
			}
			metrics.RecordStorageError()
			return false, err
		}
		metrics.RecordScoreRecorded()
	}

	metrics.RecordSubmission()
	s.refreshGauges(ctx)

	s.logger.Info(ctx, "submission recorded",
		logger.String("submissionID", sub.SubmissionID),
		logger.String("judge", sub.JudgeName),
		logger.Int("scores", len(sub.Scores)),
	)
	return false, nil
}

// Scores returns every stored score.
func (s *Service) Scores(ctx context.Context) ([]model.Score, error) {
	return s.store.List(ctx)
}

// Results aggregates the current score set into the ranked view.
func (s *Service) Results(ctx context.Context) ([]types.SampleResult, error) {
	scores, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := aggregate.Compute(s.rubric, scores)
	metrics.RecordAggregationDuration(float64(time.Since(start).Nanoseconds()) / 1e6)

	return results, nil
}

// SampleResult returns the aggregated row for one sample.
func (s *Service) SampleResult(ctx context.Context, sampleID string) (types.SampleResult, error) {
	if _, ok := s.rubric.SampleByID(sampleID); !ok {
		return types.SampleResult{}, fmt.Errorf("%w: %s", ErrSampleNotFound, sampleID)
	}
	results, err := s.Results(ctx)
	if err != nil {
		return types.SampleResult{}, err
	}
	for _, row := range results {
		if row.SampleID == sampleID {
			return row, nil
		}
	}
	return types.SampleResult{}, fmt.Errorf("%w: %s", ErrSampleNotFound, sampleID)
}

// Export serializes every stored score in the requested format.
func (s *Service) Export(ctx context.Context, format string) ([]byte, error) {
	scores, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []byte
	switch format {
	case export.FormatCSV:
		out, err = export.CSV(scores)
	case export.FormatJSON, "":
		out, err = export.JSON(scores)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordExport(formatOrDefault(format))
	return out, nil
}

func formatOrDefault(format string) string {
	if format == "" {
		return export.FormatJSON
	}
	return format
}

// Reset wipes every stored score and forgets seen submissions.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		metrics.RecordStorageError()
		return err
	}
	s.deduper.Reset(ctx)
	s.refreshGauges(ctx)
	s.logger.Info(ctx, "all scores reset")
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"storage":    s.storage,
		"samples":    len(s.rubric.Samples()),
		"categories": len(s.rubric.Categories()),
	}

	if s.started {
		ctx := context.Background()
		stats["storedScores"] = s.store.Count(ctx)
		stats["judges"] = s.store.JudgeCount(ctx)
		stats["submissionsSeen"] = s.deduper.Size()
	}

	return stats
}

// IsNotFound reports whether err is the unknown-sample condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSampleNotFound)
}

// refreshGauges pushes store counts to the metrics gauges.
func (s *Service) refreshGauges(ctx context.Context) {
	metrics.UpdateStoredScores(s.store.Count(ctx))
	metrics.UpdateJudgesTotal(s.store.JudgeCount(ctx))
}
