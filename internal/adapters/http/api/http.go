// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/smokeoff/internal/domain/model"
	"github.com/okian/smokeoff/internal/domain/tasting"
	"github.com/okian/smokeoff/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Write operations.
	RecordScore(ctx context.Context, sc model.Score) error
	RecordSubmission(ctx context.Context, sub model.Submission) (bool, error)
	Reset(ctx context.Context) error

	// Read operations expose the raw and aggregated score sets.
	Scores(ctx context.Context) ([]model.Score, error)
	Results(ctx context.Context) ([]types.SampleResult, error)
	SampleResult(ctx context.Context, sampleID string) (types.SampleResult, error)
	Export(ctx context.Context, format string) ([]byte, error)

	// Rubric exposes the injected tasting setup for form rendering.
	Rubric() *tasting.Rubric
}

// SampleResult mirrors the read shape returned by results queries.
type SampleResult = types.SampleResult

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	scoresHandler      *ScoresHandler
	submissionsHandler *SubmissionsHandler
	resultsHandler     *ResultsHandler
	exportHandler      *ExportHandler
	resetHandler       *ResetHandler
	rubricHandler      *RubricHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		scoresHandler:      NewScoresHandler(deps),
		submissionsHandler: NewSubmissionsHandler(deps),
		resultsHandler:     NewResultsHandler(deps),
		exportHandler:      NewExportHandler(deps),
		resetHandler:       NewResetHandler(deps),
		rubricHandler:      NewRubricHandler(deps),
		dashboardHandler:   newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rubric", MetricsMiddleware(s.rubricHandler.HandleGetRubric, "rubric"))
	mux.HandleFunc("/scores", MetricsMiddleware(s.scoresHandler.HandleScores, "scores"))
	mux.HandleFunc("/submissions", MetricsMiddleware(s.submissionsHandler.HandlePostSubmission, "submissions"))
	mux.HandleFunc("/results", MetricsMiddleware(s.resultsHandler.HandleGetResults, "results"))
	mux.HandleFunc("/results/", MetricsMiddleware(s.resultsHandler.HandleGetSampleResult, "results_sample"))
	mux.HandleFunc("/export", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
	mux.HandleFunc("/reset", MetricsMiddleware(s.resetHandler.HandleReset, "reset"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/", s.dashboardHandler.HandleRoot)
}

type ackResponse struct {
	Status       string `json:"status"`
	Duplicate    bool   `json:"duplicate,omitempty"`
	SubmissionID string `json:"submission_id,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates service errors to HTTP responses:
// rubric validation -> 400, unknown sample -> 404, storage -> 500.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, tasting.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", Wrap(op, err))
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "storage_error", Wrap(op, err))
	}
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// This stays generic to avoid tight coupling with specific packages.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
