package handler

import (
	"net/http"
)

// handleGetSession handles GET /sessions/{identifier}.
//
// The lookup is side-effect free: an expired session is reported with
// its Expired flag set rather than being removed.
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("identifier")

	resp, err := h.activation.GetSession(r.Context(), identifier)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, SessionResponse{
		Identifier:  resp.Identifier,
		Plan:        resp.Plan,
		ActivatedAt: resp.ActivatedAt,
		ExpiresAt:   resp.ExpiresAt,
		Expired:     resp.Expired,
	})
}

// handleDeactivate handles DELETE /sessions/{identifier}.
// Removing an absent session succeeds.
func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("identifier")

	if err := h.activation.Deactivate(r.Context(), identifier); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"identifier": identifier,
		"status":     "deactivated",
	})
}
