package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/interp"
	"github.com/hireon/talentsearch/internal/domain/search/request"
	"github.com/hireon/talentsearch/internal/domain/search/route"
)

// maxHybridPool bounds the phase-1 candidate pool regardless of topK.
const maxHybridPool = 100

// hybridPoolSize widens the structured page to build a candidate pool worth
// re-ranking: min(topK*3, 100).
func hybridPoolSize(topK int) int {
	pool := topK * 3
	if pool > maxHybridPool {
		pool = maxHybridPool
	}
	return pool
}

// executeHybrid runs the two-phase hybrid search: a widened structured
// candidate pool, then semantic re-ranking via RRF against a KNN list for
// the query text. When embedding is unavailable the pool is truncated to
// topK unchanged. Never returns more than topK results.
func (s *Service) executeHybrid(
	ctx context.Context, itp *interp.Interpretation, req *request.ChatRequest, log *zap.Logger,
) (dispatched, error) {
	crit := itp.Structured()
	if crit == nil {
		return dispatched{}, fmt.Errorf("%w: hybrid route without criteria", domain.ErrValidation)
	}

	pool, err := s.consultants.Search(ctx, domain.ConsultantQuery{
		Criteria:        *crit,
		MinQualityScore: crit.MinQualityScore(),
		Page:            0,
		Size:            hybridPoolSize(req.TopK()),
	})
	if err != nil {
		return dispatched{}, fmt.Errorf("hybrid candidate pool: %w", err)
	}

	items := s.rerankPool(ctx, pool.Items, itp.SemanticText(), req.TopK(), log)

	return dispatched{
		executed: route.Hybrid,
		results:  assembleStructured(items, crit),
	}, nil
}

// rerankPool fuses the structured pool ranking with a semantic KNN ranking.
// Any embedding trouble degrades to plain truncation of the pool; phase 1
// results are never thrown away because phase 2 misbehaved.
func (s *Service) rerankPool(
	ctx context.Context, pool []domain.ConsultantSummary, queryText string, topK int, log *zap.Logger,
) []domain.ConsultantSummary {
	truncate := func() []domain.ConsultantSummary {
		if len(pool) > topK {
			return pool[:topK]
		}
		return pool
	}

	if !s.flags.EmbeddingEnabled || s.embedder == nil || queryText == "" || len(pool) == 0 {
		return truncate()
	}

	hits, err := s.semanticHits(ctx, queryText, hybridPoolSize(topK))
	if err != nil {
		log.Warn("Hybrid re-ranking unavailable, truncating candidate pool", zap.Error(err))
		return truncate()
	}

	// Fuse within the candidate pool only: semantic hits outside the pool do
	// not satisfy the structured criteria and must not re-enter.
	inPool := make(map[string]domain.ConsultantSummary, len(pool))
	structuredIDs := make([]string, len(pool))
	for i := range pool {
		inPool[pool[i].ID] = pool[i]
		structuredIDs[i] = pool[i].ID
	}

	semanticIDs := make([]string, 0, len(hits))
	for _, h := range hits {
		if _, ok := inPool[h.ConsultantID]; ok {
			semanticIDs = append(semanticIDs, h.ConsultantID)
		}
	}

	fusedIDs := fuseRRF(structuredIDs, semanticIDs, topK)

	reranked := make([]domain.ConsultantSummary, 0, len(fusedIDs))
	for _, id := range fusedIDs {
		reranked = append(reranked, inPool[id])
	}
	return reranked
}
