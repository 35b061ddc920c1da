package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
	Identity() EmbedderIdentity
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbedderIdentity names the embedding space a vector belongs to.
// Vectors from different (provider, model) pairs must never be compared.
type EmbedderIdentity struct {
	Provider   string
	Model      string
	Dimensions int
}

// EmbeddingResult carries the embedding vector and token usage through the
// decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// SemanticHit is a single nearest-neighbor match from the vector store.
// Distance is the raw vector distance, ascending = closer.
type SemanticHit struct {
	ConsultantID string
	Distance     float64
}

// IsZero reports whether the vector is empty or contains only zero values.
// Either signals embedding-service malfunction.
func (r EmbeddingResult) IsZero() bool {
	if len(r.Embedding) == 0 {
		return true
	}
	for _, v := range r.Embedding {
		if v != 0 {
			return false
		}
	}
	return true
}
