package httpserver

import (
	"net/http"

	"github.com/transgate/transgate-go/internal/core/service"
	"github.com/transgate/transgate-go/internal/server/httpserver/handler"
	"github.com/transgate/transgate-go/internal/telemetry/logger"
	"github.com/transgate/transgate-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// ActivationService handles token activation and session state.
	ActivationService *service.ActivationService

	// IssuerService mints activation tokens for the admin API.
	IssuerService *service.IssuerService

	// Translator forwards translation requests to the upstream.
	Translator handler.Translator

	// Metrics exposes the Prometheus registry and records request
	// durations. May be nil.
	Metrics *metric.Registry

	// Logger for request logging.
	Logger logger.Logger

	// CORSAllowedOrigins is the list of allowed CORS origins (empty = allow all).
	CORSAllowedOrigins []string

	// RateLimitEnabled toggles per-IP rate limiting.
	RateLimitEnabled bool

	// RateLimitRPS is the sustained per-IP request rate.
	RateLimitRPS float64

	// RateLimitBurst is the per-IP burst allowance.
	RateLimitBurst int
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := handler.New(cfg.ActivationService, cfg.IssuerService, cfg.Translator, cfg.Logger)

	var requestMetrics RequestMetrics
	if cfg.Metrics != nil {
		requestMetrics = cfg.Metrics
	}

	// Health endpoints skip rate limiting so probes are never shed.
	probeChain := []Middleware{
		Recover(cfg.Logger),
		RequestID(),
	}

	// Business endpoints get the full chain.
	// Order: Recover -> SecurityHeaders -> CORS -> RequestID -> RateLimit -> RequestLog -> Handler
	apiChain := []Middleware{
		Recover(cfg.Logger),
		SecurityHeaders(),
		CORS(cfg.CORSAllowedOrigins),
		RequestID(),
	}
	if cfg.RateLimitEnabled {
		apiChain = append(apiChain, RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	apiChain = append(apiChain, RequestLog(cfg.Logger, requestMetrics))

	apiHandler := Chain(h, apiChain...)
	probeHandler := Chain(h, probeChain...)

	mux := http.NewServeMux()

	// Health endpoints
	mux.Handle("GET /health", probeHandler)
	mux.Handle("GET /ready", probeHandler)

	// Metrics endpoint, Prometheus exposition format
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), probeChain...))
	}

	// Activation and translation endpoints
	mux.Handle("POST /activate", apiHandler)
	mux.Handle("POST /translate", apiHandler)

	// Session endpoints
	mux.Handle("GET /sessions/{identifier}", apiHandler)
	mux.Handle("DELETE /sessions/{identifier}", apiHandler)

	// Admin endpoints
	mux.Handle("POST /admin/v1/tokens", apiHandler)
	mux.Handle("POST /admin/v1/sweep", apiHandler)
	mux.Handle("GET /admin/v1/status", apiHandler)

	return mux
}
