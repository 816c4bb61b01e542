// Package chi exposes the recommendation API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cozyhaus/furnish/internal/domain"
	"github.com/cozyhaus/furnish/internal/domain/filter"
	"github.com/cozyhaus/furnish/internal/domain/request"
	analyticsuc "github.com/cozyhaus/furnish/internal/usecase/analytics"
	healthuc "github.com/cozyhaus/furnish/internal/usecase/health"
	recommenduc "github.com/cozyhaus/furnish/internal/usecase/recommend"
	refreshuc "github.com/cozyhaus/furnish/internal/usecase/refresh"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest            = "bad_request"
	codeValidationFailed      = "validation_failed"
	codeCatalogUnavailable    = "catalog_unavailable"
	codeEmbeddingProviderDown = "embedding_provider_error"
	codeInternalError         = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the usecase services to HTTP routes.
type Server struct {
	recommend     *recommenduc.Service
	analytics     *analyticsuc.Service
	health        *healthuc.Service
	refresh       *refreshuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	analytics *analyticsuc.Service,
	health *healthuc.Service,
	refresh *refreshuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		analytics: analytics,
		health:    health,
		refresh:   refresh,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		invalidRequestHandler,
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, codeCatalogUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderDown),
	}
	return s
}

// Routes mounts all API endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/recommend", s.Recommend)
	r.Get("/api/analytics/summary", s.AnalyticsSummary)
	r.Post("/api/refresh", s.Refresh)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Recommend handles POST /api/recommend.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	filters, err := filter.FromMap(req.Filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	domReq, err := request.New(req.Query, filters, req.Page, req.Size, req.K, req.ImageURL)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	result, err := s.recommend.Recommend(r.Context(), domReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendToResponse(&domReq, result))
}

// AnalyticsSummary handles GET /api/analytics/summary.
func (s *Server) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, summaryToResponse(s.analytics.Summarize()))
}

// Refresh handles POST /api/refresh.
func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := s.refresh.Refresh(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Products:    result.Products,
		Mode:        result.Mode,
		SkippedRows: result.SkippedRows,
		TookMs:      result.Took.Seconds() * 1000,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
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
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrCatalogUnavailable,
		domain.ErrEmbeddingProviderError,
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

// invalidRequestHandler surfaces the offending field when available.
func invalidRequestHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidRequest) {
		return false
	}
	var ire *domain.InvalidRequestError
	if errors.As(err, &ire) {
		writeError(w, http.StatusBadRequest, codeValidationFailed, ire.Error())
		return true
	}
	writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	return true
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
