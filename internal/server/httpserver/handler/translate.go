package handler

import (
	"net/http"

	"github.com/transgate/transgate-go/internal/proxy"
)

// handleTranslate handles POST /translate.
//
// The session check runs before anything is forwarded: a request
// without a live session is rejected with 401 and the upstream is
// never contacted.
func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	switch {
	case req.Identifier == "":
		h.writeError(w, r, http.StatusBadRequest, "TG-SYS-4000", "identifier is required", nil)
		return
	case req.Text == "":
		h.writeError(w, r, http.StatusBadRequest, "TG-SYS-4000", "text is required", nil)
		return
	case req.TargetLang == "":
		h.writeError(w, r, http.StatusBadRequest, "TG-SYS-4000", "target_lang is required", nil)
		return
	}

	active, err := h.activation.IsActive(r.Context(), req.Identifier)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if !active {
		h.writeError(w, r, http.StatusUnauthorized, "TG-SESS-4010", "no active session", nil)
		return
	}

	resp, err := h.translator.Translate(r.Context(), &proxy.TranslateRequest{
		Text:       req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, TranslateResponse{
		TranslatedText: resp.TranslatedText,
		DetectedLang:   resp.DetectedLang,
	})
}
