package handler

import (
	"errors"
	"net/http"

	"github.com/transgate/transgate-go/internal/core/domain"
	"github.com/transgate/transgate-go/internal/core/service"
	"github.com/transgate/transgate-go/pkg/token"
)

// handleActivate handles POST /activate.
//
// A valid token registers (or replaces) the session for its subject.
// Any structural or signature failure yields the same generic 401.
func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	var req ActivateRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.Token == "" {
		h.writeError(w, r, http.StatusBadRequest, "TG-SYS-4000", "token is required", nil)
		return
	}

	resp, err := h.activation.Activate(r.Context(), &service.ActivateRequest{
		Token: req.Token,
	})
	if err != nil {
		// The raw token never reaches the logs, only its fingerprint.
		if errors.Is(err, domain.ErrTokenInvalid) || errors.Is(err, domain.ErrTokenExpired) {
			h.log.Warn("token rejected",
				"request_id", getRequestID(r),
				"fingerprint", token.Fingerprint(req.Token),
				"reason", domain.GetErrorDetails(err),
			)
		}
		h.handleServiceError(w, r, err)
		return
	}

	h.log.Info("session activated",
		"request_id", getRequestID(r),
		"identifier", resp.Identifier,
		"plan", resp.Plan,
	)

	h.writeJSON(w, r, http.StatusOK, ActivateResponse{
		Identifier: resp.Identifier,
		Plan:       resp.Plan,
		ExpiresAt:  resp.ExpiresAt,
	})
}
