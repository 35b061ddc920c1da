package result

// Result is a single consultant hit. Created during response assembly,
// discarded after the response is sent.
type Result struct {
	consultantID string
	name         string
	score        float64
	highlights   []string
	meta         map[string]any
}

// New creates a search result with the score clamped into [0,1].
func New(consultantID, name string, score float64, highlights []string, meta map[string]any) Result {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return Result{
		consultantID: consultantID,
		name:         name,
		score:        score,
		highlights:   highlights,
		meta:         meta,
	}
}

// ConsultantID returns the consultant identifier.
func (r *Result) ConsultantID() string { return r.consultantID }

// Name returns the consultant name.
func (r *Result) Name() string { return r.name }

// Score returns the normalized relevance score.
func (r *Result) Score() float64 { return r.score }

// Highlights returns the match explanations.
func (r *Result) Highlights() []string { return r.highlights }

// Meta returns auxiliary per-result data.
func (r *Result) Meta() map[string]any { return r.meta }
