package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"` // Additional error details
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// ActivateRequest is the request body for POST /activate.
type ActivateRequest struct {
	Token string `json:"token"`
}

// ActivateResponse is the response body for POST /activate.
type ActivateResponse struct {
	Identifier string `json:"identifier"`
	Plan       string `json:"plan,omitempty"`
	ExpiresAt  int64  `json:"expires_at"`
}

// TranslateRequest is the request body for POST /translate.
type TranslateRequest struct {
	Identifier string `json:"identifier"`
	Text       string `json:"text"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang"`
}

// TranslateResponse is the response body for POST /translate.
type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
	DetectedLang   string `json:"detected_lang,omitempty"`
}

// SessionResponse represents a registered session in API responses.
type SessionResponse struct {
	Identifier  string `json:"identifier"`
	Plan        string `json:"plan,omitempty"`
	ActivatedAt int64  `json:"activated_at"`
	ExpiresAt   int64  `json:"expires_at"`
	Expired     bool   `json:"expired"`
}

// MintTokenRequest is the request body for POST /admin/v1/tokens.
type MintTokenRequest struct {
	Identifier string `json:"identifier"`
	Plan       string `json:"plan,omitempty"`
	TTLSeconds int64  `json:"ttl_seconds,omitempty"`
}

// MintTokenResponse is the response body for POST /admin/v1/tokens.
type MintTokenResponse struct {
	Token     string `json:"token"`
	Nonce     string `json:"nonce"`
	ExpiresAt int64  `json:"expires_at"`
}

// SweepResponse is the response body for POST /admin/v1/sweep.
type SweepResponse struct {
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}

// StatusResponse is the response body for GET /admin/v1/status.
type StatusResponse struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	GoVersion     string `json:"go_version"`
	SessionCount  int    `json:"session_count"`
	UpstreamReady bool   `json:"upstream_ready"`
}
