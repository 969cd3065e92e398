package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/transgate/transgate-go/internal/core/domain"
	"github.com/transgate/transgate-go/internal/infra/tlsroots"
)

// maxResponseBytes caps upstream response bodies.
const maxResponseBytes = 1 << 20

// UpstreamMetrics records forwarded request outcomes.
type UpstreamMetrics interface {
	RecordUpstreamRequest(status int)
}

type nopMetrics struct{}

func (nopMetrics) RecordUpstreamRequest(int) {}

// Client forwards translation requests to the configured upstream.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    UpstreamMetrics
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Used in tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUpstreamMetrics attaches a metrics sink.
func WithUpstreamMetrics(m UpstreamMetrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTLSRoots sets the root CA pool used for TLS connections to the
// upstream.
func WithTLSRoots(pool *tlsroots.Pool) ClientOption {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig: pool.TLSConfig(),
		}
	}
}

// NewClient creates a proxy client for the given upstream base URL.
// An empty baseURL yields a client whose calls report the upstream
// as unavailable; the gateway runs without a translation backend.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    nopMetrics{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Enabled reports whether an upstream is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// TranslateRequest is the payload forwarded to the upstream.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang"`
}

// TranslateResponse is the upstream's translation result.
type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
	DetectedLang   string `json:"detected_lang,omitempty"`
}

// Translate forwards a translation request to the upstream.
func (c *Client) Translate(ctx context.Context, req *TranslateRequest) (*TranslateResponse, error) {
	if !c.Enabled() {
		return nil, domain.ErrUpstreamUnavailable.WithDetails("no upstream configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/translate", bytes.NewReader(body))
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.RecordUpstreamRequest(0)
		return nil, domain.ErrUpstreamUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	c.metrics.RecordUpstreamRequest(resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		if resp.StatusCode >= 500 {
			return nil, domain.ErrUpstreamUnavailable.WithDetails(fmt.Sprintf("upstream returned %d", resp.StatusCode))
		}
		return nil, domain.ErrBadRequest.WithDetails(fmt.Sprintf("upstream rejected request with %d", resp.StatusCode))
	}

	var out TranslateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, domain.ErrUpstreamUnavailable.WithCause(err)
	}

	return &out, nil
}
