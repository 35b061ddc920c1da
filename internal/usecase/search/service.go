package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/interp"
	"github.com/hireon/talentsearch/internal/domain/search/request"
	"github.com/hireon/talentsearch/internal/domain/search/result"
	"github.com/hireon/talentsearch/internal/domain/search/route"
	"github.com/hireon/talentsearch/internal/metrics"
)

// Generic-fallback confidence reported when a dispatch fails outright.
const (
	genericFallbackRouteConfidence      = 0.3
	genericFallbackExtractionConfidence = 0.3
)

// Flags holds the feature enablement the orchestrator dispatches on.
type Flags struct {
	Provider         string
	EmbeddingEnabled bool
	HybridEnabled    bool
	RAGEnabled       bool
}

// Service is the route dispatcher: it interprets the query, executes the
// chosen retrieval strategy with the fallback chain applied, and assembles
// the response. Holds no state across requests.
type Service struct {
	interpreter Interpreter
	consultants ConsultantReader
	vectors     VectorSearcher
	embedder    domain.Embedder
	completer   Completer
	flags       Flags
	log         *zap.Logger
}

// New creates the search orchestrator. embedder may be nil when the
// embedding feature is disabled.
func New(
	interpreter Interpreter,
	consultants ConsultantReader,
	vectors VectorSearcher,
	embedder domain.Embedder,
	completer Completer,
	flags Flags,
	log *zap.Logger,
) *Service {
	return &Service{
		interpreter: interpreter,
		consultants: consultants,
		vectors:     vectors,
		embedder:    embedder,
		completer:   completer,
		flags:       flags,
		log:         log,
	}
}

// dispatched is the outcome of one route execution.
type dispatched struct {
	executed route.Route
	results  []result.Result
	answer   string
	sources  []string
}

// Chat runs one chat search end to end. It only returns an error for
// failures the caller must see (embedding infrastructure breakage); every
// other dispatch failure is absorbed into the generic fallback so callers
// always receive a well-formed response.
func (s *Service) Chat(ctx context.Context, req *request.ChatRequest) (*ChatResponse, error) {
	log := s.log
	timings := make(map[string]int64, 2)

	interpStart := time.Now()
	itp := s.interpreter.Interpret(ctx, req.Text(), req.ForceMode())
	interpDur := time.Since(interpStart)
	timings[PhaseInterpretation] = interpDur.Milliseconds()
	metrics.SearchPhaseDuration.WithLabelValues(PhaseInterpretation).Observe(interpDur.Seconds())

	searchStart := time.Now()
	out, err := s.dispatch(ctx, &itp, req, log)
	searchDur := time.Since(searchStart)
	timings[PhaseSearch] = searchDur.Milliseconds()
	metrics.SearchPhaseDuration.WithLabelValues(PhaseSearch).Observe(searchDur.Seconds())

	status := "ok"
	if err != nil {
		if mustSurface(err) {
			metrics.SearchRequestsTotal.WithLabelValues(requestedLabel(req), string(itp.Route()), "error").Inc()
			return nil, err
		}

		log.Warn("Search dispatch failed, using generic fallback",
			zap.String("route", string(itp.Route())),
			zap.Error(err),
		)
		metrics.SearchFallbacksTotal.WithLabelValues(string(itp.Route()), string(route.Semantic), fallbackReason(err)).Inc()

		itp = interp.NewSemantic(req.Text(), interp.NewConfidence(
			genericFallbackRouteConfidence, genericFallbackExtractionConfidence,
		))
		out = dispatched{executed: route.Semantic, results: []result.Result{}}
		status = "fallback"
	}

	metrics.SearchRequestsTotal.WithLabelValues(requestedLabel(req), string(out.executed), status).Inc()

	return &ChatResponse{
		Mode:      out.executed,
		Results:   out.results,
		Answer:    out.answer,
		Sources:   out.sources,
		LatencyMs: timings[PhaseInterpretation] + timings[PhaseSearch],
		Debug: DebugInfo{
			Interpretation: itp,
			Timings:        timings,
			Flags: FlagsSnapshot{
				Provider:         s.flags.Provider,
				EmbeddingEnabled: s.flags.EmbeddingEnabled,
				HybridEnabled:    s.flags.HybridEnabled,
				RAGEnabled:       s.flags.RAGEnabled,
			},
		},
		ConversationID: req.ConversationID(),
	}, nil
}

// dispatch routes execution by the interpreted route. The switch is
// exhaustive over the route enum; fallback transitions are applied here and
// logged with their reason.
func (s *Service) dispatch(
	ctx context.Context, itp *interp.Interpretation, req *request.ChatRequest, log *zap.Logger,
) (dispatched, error) {
	switch itp.Route() {
	case route.Structured:
		return s.executeStructured(ctx, itp, req)

	case route.Semantic:
		return s.executeSemantic(ctx, itp.SemanticText(), req)

	case route.Hybrid:
		if !s.flags.HybridEnabled {
			log.Info("Hybrid search disabled, falling back to structured",
				zap.String("from", string(route.Hybrid)),
				zap.String("to", string(route.Structured)),
			)
			metrics.SearchFallbacksTotal.WithLabelValues(
				string(route.Hybrid), string(route.Structured), "hybrid_disabled",
			).Inc()
			return s.executeStructured(ctx, itp, req)
		}
		return s.executeHybrid(ctx, itp, req, log)

	case route.RAG:
		if !s.flags.RAGEnabled {
			log.Info("RAG disabled, falling back to semantic",
				zap.String("from", string(route.RAG)),
				zap.String("to", string(route.Semantic)),
			)
			metrics.SearchFallbacksTotal.WithLabelValues(
				string(route.RAG), string(route.Semantic), "rag_disabled",
			).Inc()
			return s.executeSemantic(ctx, req.Text(), req)
		}
		return s.executeRAG(ctx, itp, req)
	}

	return dispatched{}, fmt.Errorf("unsupported route: %s", itp.Route())
}

// executeStructured runs the relational filter search.
func (s *Service) executeStructured(
	ctx context.Context, itp *interp.Interpretation, req *request.ChatRequest,
) (dispatched, error) {
	crit := itp.Structured()
	if crit == nil {
		return dispatched{}, fmt.Errorf("%w: structured route without criteria", domain.ErrValidation)
	}

	page, err := s.consultants.Search(ctx, domain.ConsultantQuery{
		Criteria:        *crit,
		MinQualityScore: crit.MinQualityScore(),
		Page:            0,
		Size:            req.TopK(),
	})
	if err != nil {
		return dispatched{}, fmt.Errorf("structured search: %w", err)
	}

	return dispatched{
		executed: route.Structured,
		results:  assembleStructured(page.Items, crit),
	}, nil
}

// executeSemantic embeds the query and runs KNN retrieval.
func (s *Service) executeSemantic(
	ctx context.Context, text string, req *request.ChatRequest,
) (dispatched, error) {
	hits, err := s.semanticHits(ctx, text, req.TopK())
	if err != nil {
		return dispatched{}, err
	}

	// Chat always reads the first page of the bounded top-K list.
	hits = paginateHits(hits, 0, req.TopK())

	items, err := s.summariesForHits(ctx, hits)
	if err != nil {
		return dispatched{}, err
	}

	return dispatched{
		executed: route.Semantic,
		results:  assembleSemantic(items, hits, text),
	}, nil
}

// semanticHits embeds text and queries the vector store. An empty or
// all-zero vector is infrastructure breakage, distinct from the feature
// being disabled.
func (s *Service) semanticHits(ctx context.Context, text string, topK int) ([]domain.SemanticHit, error) {
	if !s.flags.EmbeddingEnabled || s.embedder == nil {
		return nil, fmt.Errorf("semantic search: %w", domain.ErrEmbeddingDisabled)
	}

	emb, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	if emb.IsZero() {
		return nil, fmt.Errorf("embedding service returned zero vector: %w", domain.ErrEmbeddingGeneration)
	}

	hits, err := s.vectors.SearchKNN(ctx, emb.Embedding, s.embedder.Identity(), topK, nil, false)
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}
	return hits, nil
}

// summariesForHits loads consultant projections preserving hit order.
func (s *Service) summariesForHits(ctx context.Context, hits []domain.SemanticHit) ([]domain.ConsultantSummary, error) {
	if len(hits) == 0 {
		return nil, nil
	}
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ConsultantID
	}
	items, err := s.consultants.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load consultants: %w", err)
	}
	return items, nil
}

// paginateHits slices an already-bounded top-K hit list in memory. Pages
// beyond the list simply come back empty; the vector store is never
// re-queried.
func paginateHits(hits []domain.SemanticHit, page, size int) []domain.SemanticHit {
	if page < 0 || size <= 0 {
		return nil
	}
	start := page * size
	if start >= len(hits) {
		return nil
	}
	end := start + size
	if end > len(hits) {
		end = len(hits)
	}
	return hits[start:end]
}

// mustSurface reports whether an error signals infrastructure breakage the
// caller has to see instead of a silent fallback.
func mustSurface(err error) bool {
	return errors.Is(err, domain.ErrEmbeddingGeneration) ||
		errors.Is(err, domain.ErrEmbeddingProviderError) ||
		errors.Is(err, domain.ErrProviderMismatch)
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmbeddingDisabled):
		return "embedding_disabled"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_interpretation"
	default:
		return "dispatch_error"
	}
}

func requestedLabel(req *request.ChatRequest) string {
	if fm := req.ForceMode(); fm != nil {
		return string(*fm)
	}
	return "AUTO"
}
