package search

import (
	"context"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/interp"
	"github.com/hireon/talentsearch/internal/domain/search/route"
)

// Interpreter classifies free text into an interpretation. Never fails;
// classifier trouble degrades to a semantic fallback internally.
type Interpreter interface {
	Interpret(ctx context.Context, text string, forced *route.Route) interp.Interpretation
}

// ConsultantReader is the relational storage contract for search operations.
type ConsultantReader interface {
	Search(ctx context.Context, q domain.ConsultantQuery) (domain.Page, error)
	SummariesByIDs(ctx context.Context, ids []string) ([]domain.ConsultantSummary, error)
	FindByName(ctx context.Context, name string) (domain.ConsultantSummary, error)
	CVsForConsultant(ctx context.Context, consultantID string) ([]domain.CVDocument, error)
}

// VectorSearcher runs nearest-neighbor queries scoped to an embedding space.
type VectorSearcher interface {
	SearchKNN(
		ctx context.Context,
		vector []float32,
		identity domain.EmbedderIdentity,
		topK int,
		minQualityScore *int,
		onlyActiveCV bool,
	) ([]domain.SemanticHit, error)
}

// Completer generates the RAG answer.
type Completer interface {
	Complete(ctx context.Context, prompt string) (domain.CompletionResult, error)
}
