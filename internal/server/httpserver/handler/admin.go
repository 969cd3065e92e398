package handler

import (
	"net/http"
	"time"

	"github.com/transgate/transgate-go/internal/core/service"
	"github.com/transgate/transgate-go/internal/infra/buildinfo"
)

// handleMintToken handles POST /admin/v1/tokens.
// The minted token is returned once and not stored anywhere.
func (h *Handler) handleMintToken(w http.ResponseWriter, r *http.Request) {
	var req MintTokenRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	resp, err := h.issuer.Issue(r.Context(), &service.IssueRequest{
		Identifier: req.Identifier,
		Plan:       req.Plan,
		TTL:        time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.log.Info("token minted",
		"request_id", getRequestID(r),
		"identifier", req.Identifier,
		"plan", req.Plan,
	)

	h.writeJSON(w, r, http.StatusCreated, MintTokenResponse{
		Token:     resp.Token,
		Nonce:     resp.Nonce,
		ExpiresAt: resp.ExpiresAt,
	})
}

// handleSweep handles POST /admin/v1/sweep.
func (h *Handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	removed, err := h.activation.SweepExpired(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, SweepResponse{
		Removed:   removed,
		Remaining: h.activation.SessionCount(),
	})
}

// handleAdminStatus handles GET /admin/v1/status.
func (h *Handler) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()

	h.writeJSON(w, r, http.StatusOK, StatusResponse{
		Version:       info.Version,
		Commit:        info.Commit,
		GoVersion:     info.GoVersion,
		SessionCount:  h.activation.SessionCount(),
		UpstreamReady: h.translator.Enabled(),
	})
}
