package interpret

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/hireon/talentsearch/internal/domain/search/interp"
	"github.com/hireon/talentsearch/internal/domain/search/route"
	"github.com/hireon/talentsearch/internal/metrics"
)

// Fallback confidence when the classifier fails or its output cannot be
// parsed.
const (
	fallbackRouteConfidence      = 0.5
	fallbackExtractionConfidence = 0.5
)

// Service classifies free-text queries into interpretations. It never fails:
// classifier errors degrade to a SEMANTIC fallback interpretation.
//
// Results are memoized per (text, forceMode) in a bounded TTL cache. The
// cache is safe for concurrent use; two requests racing on the same key may
// both compute, which is harmless because computation is idempotent.
type Service struct {
	completer Completer
	cache     *expirable.LRU[string, interp.Interpretation]
	logger    *zap.Logger
}

// NewService creates an interpretation service with a bounded TTL cache.
func NewService(completer Completer, cacheSize int, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		completer: completer,
		cache:     expirable.NewLRU[string, interp.Interpretation](cacheSize, nil, cacheTTL),
		logger:    logger,
	}
}

// Interpret classifies text into an interpretation. When forced is non-nil
// the completion service is bypassed entirely and a deterministic local
// interpretation is built for that route.
func (s *Service) Interpret(ctx context.Context, text string, forced *route.Route) interp.Interpretation {
	key := cacheKey(text, forced)

	if cached, ok := s.cache.Get(key); ok {
		metrics.InterpretationCacheTotal.WithLabelValues("hit").Inc()
		return cached
	}
	metrics.InterpretationCacheTotal.WithLabelValues("miss").Inc()

	var result interp.Interpretation
	if forced != nil {
		result = forcedInterpretation(text, *forced)
	} else {
		result = s.classify(ctx, text)
	}

	s.cache.Add(key, result)
	return result
}

// classify calls the completion service and parses its output, degrading to
// the SEMANTIC fallback on any failure.
func (s *Service) classify(ctx context.Context, text string) interp.Interpretation {
	completion, err := s.completer.Complete(ctx, renderPrompt(text))
	if err != nil {
		s.logger.Warn("Query classification failed, using semantic fallback", zap.Error(err))
		return s.fallback(text)
	}

	result, err := parseInterpretation(completion.Content, text)
	if err != nil {
		s.logger.Warn("Unparsable classifier output, using semantic fallback",
			zap.Error(err),
			zap.Int("response_len", len(completion.Content)),
		)
		return s.fallback(text)
	}

	return result
}

func (s *Service) fallback(text string) interp.Interpretation {
	metrics.InterpretationFallbacksTotal.Inc()
	conf := interp.NewConfidence(fallbackRouteConfidence, fallbackExtractionConfidence)
	return interp.NewSemantic(text, conf)
}

// Purge clears the memoization cache.
func (s *Service) Purge() {
	s.cache.Purge()
}

func cacheKey(text string, forced *route.Route) string {
	var b strings.Builder
	b.WriteString(text)
	b.WriteByte(0)
	if forced != nil {
		b.WriteString(string(*forced))
	}
	return b.String()
}
