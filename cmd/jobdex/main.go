package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobdex/internal/config"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	"github.com/kailas-cloud/jobdex/internal/engine"
	engineMemory "github.com/kailas-cloud/jobdex/internal/engine/memory"
	engineOS "github.com/kailas-cloud/jobdex/internal/engine/opensearch"
	logpkg "github.com/kailas-cloud/jobdex/internal/logger"
	"github.com/kailas-cloud/jobdex/internal/metrics"
	jobsrepo "github.com/kailas-cloud/jobdex/internal/repository/jobs"
	chiTransport "github.com/kailas-cloud/jobdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/jobdex/internal/usecase/health"
	jobsuc "github.com/kailas-cloud/jobdex/internal/usecase/jobs"
	searchuc "github.com/kailas-cloud/jobdex/internal/usecase/search"
	"github.com/kailas-cloud/jobdex/internal/version"
)

const serviceName = "jobdex"

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting jobdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_driver", cfg.Engine.Driver),
		zap.String("engine_index", cfg.Engine.Index),
		zap.Strings("engine_addrs", cfg.Engine.Addresses),
	)

	client := buildEngine(cfg, logger)
	defer client.Close()

	// Wait for the engine to be ready
	ctx := context.Background()
	if err := client.WaitForReady(ctx, time.Duration(cfg.Engine.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}
	logger.Info("Connected to search engine")

	// Register Prometheus collectors explicitly (no init())
	metrics.Register()

	// Repository and use case services
	repo := jobsrepo.New(client, cfg.Engine.Index)

	searchSvc := searchuc.New(repo, logger)
	jobsSvc := jobsuc.New(repo)
	healthSvc := healthuc.New(serviceName, version.Version, client)

	parseOpts := request.Options{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
	}
	server := chiTransport.NewServer(searchSvc, jobsSvc, healthSvc, parseOpts, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEngine creates the engine client for the configured driver.
func buildEngine(cfg config.Config, logger *zap.Logger) engine.Client {
	switch cfg.Engine.Driver {
	case "opensearch":
		client, err := engineOS.NewClient(engineOS.Config{
			Addresses:      cfg.Engine.Addresses,
			Username:       cfg.Engine.Username,
			Password:       cfg.Engine.Password,
			RequestTimeout: time.Duration(cfg.Engine.RequestTimeoutSec) * time.Second,
			MaxRetries:     cfg.Engine.MaxRetries,
			RetryOnTimeout: cfg.Engine.RetryOnTimeout,
		})
		if err != nil {
			logger.Fatal("Failed to create engine client", zap.Error(err))
		}
		return client

	case "memory":
		store, err := engineMemory.NewStore(cfg.Engine.Index)
		if err != nil {
			logger.Fatal("Failed to create in-memory engine", zap.Error(err))
		}
		if cfg.Engine.SeedFile != "" {
			n, err := store.Seed(cfg.Engine.SeedFile)
			if err != nil {
				logger.Fatal("Failed to seed in-memory engine",
					zap.String("seed_file", cfg.Engine.SeedFile),
					zap.Error(err),
				)
			}
			logger.Info("Seeded in-memory engine",
				zap.String("seed_file", cfg.Engine.SeedFile),
				zap.Int("documents", n),
			)
		}
		return store

	default:
		logger.Fatal("Unknown engine driver", zap.String("driver", cfg.Engine.Driver))
		return nil
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"error": map[string]string{
							"code":    "internal_error",
							"message": "internal error",
						},
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
