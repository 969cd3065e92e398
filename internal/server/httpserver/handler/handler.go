package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/transgate/transgate-go/internal/core/domain"
	"github.com/transgate/transgate-go/internal/core/service"
	"github.com/transgate/transgate-go/internal/proxy"
	"github.com/transgate/transgate-go/internal/telemetry/logger"
)

// Translator forwards translation requests to the upstream backend.
// *proxy.Client implements it.
type Translator interface {
	Enabled() bool
	Translate(ctx context.Context, req *proxy.TranslateRequest) (*proxy.TranslateResponse, error)
}

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	activation *service.ActivationService
	issuer     *service.IssuerService
	translator Translator
	log        logger.Logger
	mux        *http.ServeMux
}

// New creates a new Handler with the given services.
func New(activation *service.ActivationService, issuer *service.IssuerService, translator Translator, log logger.Logger) *Handler {
	h := &Handler{
		activation: activation,
		issuer:     issuer,
		translator: translator,
		log:        log,
		mux:        http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Health endpoints (no auth required)
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	// Activation and translation endpoints
	h.mux.HandleFunc("POST /activate", h.handleActivate)
	h.mux.HandleFunc("POST /translate", h.handleTranslate)

	// Session endpoints
	h.mux.HandleFunc("GET /sessions/{identifier}", h.handleGetSession)
	h.mux.HandleFunc("DELETE /sessions/{identifier}", h.handleDeactivate)

	// Admin endpoints
	h.mux.HandleFunc("POST /admin/v1/tokens", h.handleMintToken)
	h.mux.HandleFunc("POST /admin/v1/sweep", h.handleSweep)
	h.mux.HandleFunc("GET /admin/v1/status", h.handleAdminStatus)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	if requestID != "" {
		w.Header().Set("X-Request-ID", requestID)
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	if requestID != "" {
		w.Header().Set("X-Request-ID", requestID)
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// writeTokenRejection responds to a failed token verification.
// Malformed and forged tokens all collapse to the same generic 401 so
// a probing client learns nothing about which structural or signature
// check failed; the concrete reason stays in server logs. Expiry is
// the one exception: a well-signed token past its expiry is reported
// as expired, since the expiry instant is not secret.
func (h *Handler) writeTokenRejection(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrTokenExpired) {
		h.writeError(w, r, http.StatusUnauthorized, "TG-TOKN-4011", "token expired", nil)
		return
	}
	h.writeError(w, r, http.StatusUnauthorized, "TG-TOKN-4010", "invalid token", nil)
}

// getRequestID extracts the request ID placed in the context by the
// middleware chain. Generated IDs live only there; the request header
// carries one only when the client supplied it.
func getRequestID(r *http.Request) string {
	if reqID := logger.RequestIDFromContext(r.Context()); reqID != "" {
		return reqID
	}
	return r.Header.Get("X-Request-ID")
}

// decodeBody decodes a JSON request body into dst.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "TG-SYS-4000", "invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrTokenInvalid) || errors.Is(err, domain.ErrTokenExpired) {
		h.writeTokenRejection(w, r, err)
		return
	}

	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		status := errorCodeToHTTPStatus(code)
		h.writeError(w, r, status, code, err.Error(), nil)
		return
	}

	// Generic internal error
	h.log.Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, "TG-SYS-5000", "internal server error", nil)
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"), strings.HasSuffix(code, "-4041"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	case strings.HasSuffix(code, "-4000"), strings.HasSuffix(code, "-4001"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-4010"), strings.HasSuffix(code, "-4011"):
		return http.StatusUnauthorized
	case strings.HasSuffix(code, "-5030"):
		return http.StatusBadGateway
	case strings.HasPrefix(code, "TG-SYS-5"), strings.HasPrefix(code, "TG-CONF-5"):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
