// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/okian/smokeoff/internal/domain/model"
)

// submissionRequest mirrors the JSON body for POST /submissions:
// one judge's complete sheet.
type submissionRequest struct {
	SubmissionID string            `json:"submission_id"`
	Judge        string            `json:"judge" validate:"required"`
	Scores       []submissionScore `json:"scores" validate:"required,min=1,dive"`
}

type submissionScore struct {
	Sample   string `json:"sample" validate:"required"`
	Category string `json:"category" validate:"required"`
	Value    *int   `json:"value" validate:"required"`
}

// SubmissionsHandler handles sheet submissions.
type SubmissionsHandler struct {
	deps Dependencies
}

// NewSubmissionsHandler creates a new submissions handler.
func NewSubmissionsHandler(deps Dependencies) *SubmissionsHandler {
	return &SubmissionsHandler{deps: deps}
}

// HandlePostSubmission handles POST /submissions requests.
// Submissions are idempotent by submission_id; a missing id gets one
// assigned server-side.
func (h *SubmissionsHandler) HandlePostSubmission(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_submission"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if req.SubmissionID == "" {
		req.SubmissionID = uuid.New().String()
	}

	sub := model.Submission{
		SubmissionID: req.SubmissionID,
		JudgeName:    req.Judge,
	}
	for _, sc := range req.Scores {
		sub.Scores = append(sub.Scores, model.Score{
			JudgeName:    req.Judge,
			SampleID:     sc.Sample,
			CategoryID:   sc.Category,
			Value:        *sc.Value,
			SubmissionID: req.SubmissionID,
		})
	}

	duplicate, err := h.deps.RecordSubmission(r.Context(), sub)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true, SubmissionID: req.SubmissionID})
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "recorded", SubmissionID: req.SubmissionID})
}
