// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// rubricResponse mirrors GET /rubric: the injected tasting setup the
// entry form renders against.
type rubricResponse struct {
	Samples    []sampleInfo   `json:"samples"`
	Categories []categoryInfo `json:"categories"`
	ScoreMin   int            `json:"score_min"`
}

type sampleInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type categoryInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Max  int    `json:"max"`
}

// RubricHandler handles rubric requests.
type RubricHandler struct {
	deps Dependencies
}

// NewRubricHandler creates a new rubric handler.
func NewRubricHandler(deps Dependencies) *RubricHandler {
	return &RubricHandler{deps: deps}
}

// HandleGetRubric handles GET /rubric requests.
func (h *RubricHandler) HandleGetRubric(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rubric := h.deps.Rubric()

	resp := rubricResponse{ScoreMin: rubric.Min()}
	for _, s := range rubric.Samples() {
		resp.Samples = append(resp.Samples, sampleInfo{ID: s.ID, Label: s.Label})
	}
	for _, c := range rubric.Categories() {
		resp.Categories = append(resp.Categories, categoryInfo{ID: c.ID, Name: c.Name, Max: c.Max})
	}
	writeJSON(w, http.StatusOK, resp)
}
