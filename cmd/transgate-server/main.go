package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/transgate/transgate-go/internal/core/service"
	"github.com/transgate/transgate-go/internal/infra/buildinfo"
	"github.com/transgate/transgate-go/internal/infra/confloader"
	"github.com/transgate/transgate-go/internal/infra/shutdown"
	"github.com/transgate/transgate-go/internal/infra/tlsroots"
	"github.com/transgate/transgate-go/internal/proxy"
	"github.com/transgate/transgate-go/internal/server/config"
	"github.com/transgate/transgate-go/internal/server/httpserver"
	"github.com/transgate/transgate-go/internal/storage/memory"
	"github.com/transgate/transgate-go/internal/telemetry/logger"
	"github.com/transgate/transgate-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command line flags
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("transgate-server %s\n", buildinfo.String())
		return nil
	}

	// Load configuration
	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info("starting transgate-server",
		"version", buildinfo.Get().Version,
		"commit", buildinfo.Get().Commit,
		"config", *configFile)

	// Metrics registry
	metrics := metric.NewRegistry()

	// Session store and services. The signing secret is read once at
	// startup; a changed secret requires a restart.
	secret := []byte(cfg.Security.Secret)

	store := memory.New()
	activation := service.NewActivationService(store, secret, service.WithMetrics(metrics))
	issuer := service.NewIssuerService(secret, service.WithDefaultTTL(cfg.Session.DefaultTokenTTL))

	proxyOpts := []proxy.ClientOption{proxy.WithUpstreamMetrics(metrics)}
	if cfg.Upstream.CAFile != "" {
		pool, err := tlsroots.NewPool()
		if err != nil {
			return fmt.Errorf("init tls roots: %w", err)
		}
		if err := pool.AddCertFile(cfg.Upstream.CAFile); err != nil {
			return fmt.Errorf("load upstream CA: %w", err)
		}
		proxyOpts = append(proxyOpts, proxy.WithTLSRoots(pool))
	}
	translator := proxy.NewClient(cfg.Upstream.URL, cfg.Upstream.Timeout, proxyOpts...)

	if !translator.Enabled() {
		log.Warn("no upstream configured, /translate will report the upstream unavailable")
	}

	// Periodic expiry sweep
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sweeper := service.NewSweeper(activation, cfg.Session.SweepInterval, log)
	go sweeper.Run(sweepCtx)

	// HTTP router and server
	router := httpserver.NewRouter(&httpserver.RouterConfig{
		ActivationService: activation,
		IssuerService:     issuer,
		Translator:        translator,
		Metrics:           metrics,
		Logger:            log,
		RateLimitEnabled:  cfg.RateLimit.Enabled,
		RateLimitRPS:      cfg.RateLimit.RPS,
		RateLimitBurst:    cfg.RateLimit.Burst,
	})

	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router, httpserver.Timeouts{
		Read:  cfg.Server.HTTP.ReadTimeout,
		Write: cfg.Server.HTTP.WriteTimeout,
	})

	// Watch the config file for log level changes
	watcher, err := watchConfig(*configFile, log)
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	// Setup graceful shutdown
	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	shutdownHandler.OnShutdown(func(context.Context) error {
		stopSweeper()
		if watcher != nil {
			return watcher.Stop()
		}
		return nil
	})

	// Start HTTP server in goroutine
	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)

		var err error
		if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// watchConfig reloads the log level when the config file changes.
// All other settings, the signing secret above all, are fixed at startup.
func watchConfig(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	if configFile == "" {
		return nil, nil
	}

	watcher, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Watch(configFile); err != nil {
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(path)
		if err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
			return
		}

		logger.SetLevel(cfg.Log.Level)
		log.Info("log level reloaded", "level", cfg.Log.Level)
	})

	watcher.StartAsync()
	return watcher, nil
}
