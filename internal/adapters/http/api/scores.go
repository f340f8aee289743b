// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/okian/smokeoff/internal/domain/model"
)

// validate checks request struct tags before domain validation runs.
var validate = validator.New()

// scoreRequest mirrors the JSON body for POST /scores.
type scoreRequest struct {
	Judge    string `json:"judge" validate:"required"`
	Sample   string `json:"sample" validate:"required"`
	Category string `json:"category" validate:"required"`
	Value    *int   `json:"value" validate:"required"`
}

// ScoresHandler handles raw score requests.
type ScoresHandler struct {
	deps Dependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps Dependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// HandleScores handles POST /scores (record one) and GET /scores (list all).
func (h *ScoresHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ScoresHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	sc := model.Score{
		JudgeName:  req.Judge,
		SampleID:   req.Sample,
		CategoryID: req.Category,
		Value:      *req.Value,
	}
	if err := h.deps.RecordScore(r.Context(), sc); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "recorded"})
}

// scoreRecord mirrors one stored score in GET /scores responses.
type scoreRecord struct {
	Judge        string `json:"judge"`
	Sample       string `json:"sample"`
	Category     string `json:"category"`
	Value        int    `json:"value"`
	SubmissionID string `json:"submission_id,omitempty"`
	RecordedAt   string `json:"recorded_at"`
}

func (h *ScoresHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_scores"
	scores, err := h.deps.Scores(r.Context())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	records := make([]scoreRecord, 0, len(scores))
	for _, sc := range scores {
		records = append(records, scoreRecord{
			Judge:        sc.JudgeName,
			Sample:       sc.SampleID,
			Category:     sc.CategoryID,
			Value:        sc.Value,
			SubmissionID: sc.SubmissionID,
			RecordedAt:   sc.RecordedAt.UTC().Format(timeFormat),
		})
	}
	writeJSON(w, http.StatusOK, records)
}
