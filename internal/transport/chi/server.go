// Package chi exposes the jobs search API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobdex/internal/domain"
	"github.com/kailas-cloud/jobdex/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/jobdex/internal/usecase/health"
	jobsuc "github.com/kailas-cloud/jobdex/internal/usecase/jobs"
	searchuc "github.com/kailas-cloud/jobdex/internal/usecase/search"
)

// Error codes of the API error envelope.
const (
	codeInvalidRequest    = "invalid_request"
	codeUnknownFilter     = "unknown_filter"
	codeJobNotFound       = "job_not_found"
	codeEngineUnavailable = "engine_unavailable"
	codeEngineBadResponse = "engine_bad_response"
	codeInternalError     = "internal_error"
)

// errorBody is the inner object of the error envelope.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the envelope every error path emits.
type errorResponse struct {
	Error errorBody `json:"error"`
}

// healthResponse reports service identity and component checks.
type healthResponse struct {
	Service string            `json:"service"`
	Version string            `json:"version"`
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements the jobs search HTTP API.
type Server struct {
	search        *searchuc.Service
	jobs          *jobsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	parseOpts     request.Options
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	jobs *jobsuc.Service,
	health *healthuc.Service,
	parseOpts request.Options,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		jobs:      jobs,
		health:    health,
		logger:    logger,
		parseOpts: parseOpts,
	}
	// Order matters: unknown-filter errors wrap ErrInvalidRequest too.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnknownFilter, http.StatusBadRequest, codeUnknownFilter),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeInvalidRequest),
		sentinelHandler(domain.ErrJobNotFound, http.StatusNotFound, codeJobNotFound),
		sentinelHandler(domain.ErrEngineUnavailable, http.StatusServiceUnavailable, codeEngineUnavailable),
		sentinelHandler(domain.ErrEngineBadResponse, http.StatusBadGateway, codeEngineBadResponse),
	}
	return s
}

// Routes registers all API endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/v1/jobs", s.SearchJobs)
	r.Get("/v1/jobs/{jobID}", s.GetJob)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchJobs handles GET /v1/jobs.
func (s *Server) SearchJobs(w http.ResponseWriter, r *http.Request) {
	req, err := request.Parse(r.URL.Query(), s.parseOpts)
	if err != nil {
		code := codeInvalidRequest
		if errors.Is(err, domain.ErrUnknownFilter) {
			code = codeUnknownFilter
		}
		writeError(w, http.StatusBadRequest, code, err.Error())
		return
	}

	page, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetJob handles GET /v1/jobs/{jobID}.
func (s *Server) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")

	item, err := s.jobs.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Service: report.Service,
		Version: report.Version,
		Status:  string(report.Status),
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error: errorBody{Code: code, Message: message},
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUnknownFilter,
		domain.ErrInvalidRequest,
		domain.ErrJobNotFound,
		domain.ErrEngineUnavailable,
		domain.ErrEngineBadResponse,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
