package vector

import (
	"context"
	"errors"
	"fmt"

	"github.com/hireon/talentsearch/internal/db"
	"github.com/hireon/talentsearch/internal/domain"
)

const (
	fieldProvider     = "provider"
	fieldModel        = "model"
	fieldConsultantID = "consultant_id"
	fieldQuality      = "quality"
	fieldActive       = "active"
)

// store is the consumer interface for vector search (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// HNSWConfig tunes the vector index build.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo runs nearest-neighbor queries over stored CV embeddings. Rows are
// scoped to a (provider, model) namespace; vectors from different embedding
// spaces are never compared.
type Repo struct {
	store     store
	keyPrefix string
	hnsw      HNSWConfig
	identity  domain.EmbedderIdentity
}

// New creates a vector repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// WithHNSW overrides index build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// IndexName returns the FT index name for CV embeddings.
func (r *Repo) IndexName() string {
	return r.keyPrefix + "cv_emb:idx"
}

// EnsureIndex creates the CV embedding index when absent and pins the
// embedding space subsequent queries must match.
func (r *Repo) EnsureIndex(ctx context.Context, identity domain.EmbedderIdentity) error {
	r.identity = identity

	exists, err := r.store.IndexExists(ctx, r.IndexName())
	if err != nil {
		return fmt.Errorf("probe index: %w", err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     r.IndexName(),
		Prefixes: []string{r.keyPrefix + "cv_emb:"},
		Fields: []db.IndexField{
			{Name: fieldProvider, Type: db.IndexFieldTag},
			{Name: fieldModel, Type: db.IndexFieldTag},
			{Name: fieldConsultantID, Type: db.IndexFieldTag},
			{Name: fieldQuality, Type: db.IndexFieldNumeric},
			{Name: fieldActive, Type: db.IndexFieldNumeric},
			{
				Name:              "vector",
				Type:              db.IndexFieldVector,
				VectorDim:         identity.Dimensions,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// SearchKNN returns up to topK hits ordered by ascending distance,
// constrained to rows whose stored (provider, model) match exactly.
func (r *Repo) SearchKNN(
	ctx context.Context,
	vector []float32,
	identity domain.EmbedderIdentity,
	topK int,
	minQualityScore *int,
	onlyActiveCV bool,
) ([]domain.SemanticHit, error) {
	if r.identity != (domain.EmbedderIdentity{}) &&
		(identity.Provider != r.identity.Provider || identity.Model != r.identity.Model) {
		return nil, fmt.Errorf("%w: requested %s/%s, configured %s/%s",
			domain.ErrProviderMismatch,
			identity.Provider, identity.Model,
			r.identity.Provider, r.identity.Model)
	}

	q := &db.KNNQuery{
		IndexName: r.IndexName(),
		Vector:    vector,
		K:         topK,
		Tags: []db.TagFilter{
			{Field: fieldProvider, Value: identity.Provider},
			{Field: fieldModel, Value: identity.Model},
		},
		ReturnFields: []string{fieldConsultantID},
	}

	if minQualityScore != nil {
		minQ := float64(*minQualityScore)
		q.Numerics = append(q.Numerics, db.NumericFilter{Field: fieldQuality, Min: &minQ})
	}
	if onlyActiveCV {
		one := 1.0
		q.Numerics = append(q.Numerics, db.NumericFilter{Field: fieldActive, Min: &one, Max: &one})
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	return parseHits(sr), nil
}

// parseHits converts raw entries to hits, deduplicating consultants: a
// consultant with several embedded CVs keeps only the closest one.
func parseHits(sr *db.SearchResult) []domain.SemanticHit {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	seen := make(map[string]bool, len(sr.Entries))
	hits := make([]domain.SemanticHit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := entry.Fields[fieldConsultantID]
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		hits = append(hits, domain.SemanticHit{ConsultantID: id, Distance: entry.Distance})
	}
	return hits
}
