// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// ResetHandler handles the admin wipe of all recorded scores.
type ResetHandler struct {
	deps Dependencies
}

// NewResetHandler creates a new reset handler.
func NewResetHandler(deps Dependencies) *ResetHandler {
	return &ResetHandler{deps: deps}
}

// HandleReset handles POST /reset requests.
func (h *ResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.Reset(r.Context()); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "reset"})
}
