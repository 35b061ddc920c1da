package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/request"
	logpkg "github.com/hireon/talentsearch/internal/logger"
	healthuc "github.com/hireon/talentsearch/internal/usecase/health"
	searchuc "github.com/hireon/talentsearch/internal/usecase/search"
)

// ChatSearcher runs one chat search end to end.
type ChatSearcher interface {
	Chat(ctx context.Context, req *request.ChatRequest) (*searchuc.ChatResponse, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API surface: one search endpoint plus health and
// metrics.
type Server struct {
	search        ChatSearcher
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search ChatSearcher, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, "validation_failed"),
		sentinelHandler(domain.ErrProviderMismatch, http.StatusBadRequest, "provider_mismatch"),
		sentinelHandler(domain.ErrConsultantNotFound, http.StatusNotFound, "consultant_not_found"),
		sentinelHandler(domain.ErrEmbeddingDisabled, http.StatusServiceUnavailable, "embedding_disabled"),
		sentinelHandler(domain.ErrEmbeddingGeneration, http.StatusBadGateway, "embedding_generation_failed"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
		sentinelHandler(domain.ErrCompletionProviderError, http.StatusBadGateway, "completion_provider_error"),
	}
	return s
}

// Routes mounts all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/search/chat", s.ChatSearch)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// ChatSearch handles POST /v1/search/chat.
func (s *Server) ChatSearch(w http.ResponseWriter, r *http.Request) {
	var body chatSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	forceMode, ok := parseForceMode(body.ForceMode)
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_failed", "Invalid forceMode: "+*body.ForceMode)
		return
	}

	conversationID := ""
	if body.ConversationID != nil {
		conversationID = *body.ConversationID
	}

	req, err := request.New(body.Text, body.TopK, forceMode, conversationID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp, err := s.search.Chat(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponseToDTO(resp))
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
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

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrProviderMismatch,
		domain.ErrConsultantNotFound,
		domain.ErrEmbeddingDisabled,
		domain.ErrEmbeddingGeneration,
		domain.ErrEmbeddingProviderError,
		domain.ErrCompletionProviderError,
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

// handleDomainError maps a domain error to an HTTP response, logging through
// the request-scoped logger so the request ID stays attached.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
