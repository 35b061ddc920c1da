package interp

import (
	"github.com/hireon/talentsearch/internal/domain/search/criteria"
	"github.com/hireon/talentsearch/internal/domain/search/route"
)

// Confidence expresses the classifier's certainty in its route choice and
// field extraction. Both values are clamped into [0,1] after any external
// parse.
type Confidence struct {
	route      float64
	extraction float64
}

// NewConfidence creates clamped confidence scores.
func NewConfidence(routeScore, extraction float64) Confidence {
	return Confidence{route: clamp01(routeScore), extraction: clamp01(extraction)}
}

// Route returns the route-choice confidence.
func (c Confidence) Route() float64 { return c.route }

// Extraction returns the field-extraction confidence.
func (c Confidence) Extraction() float64 { return c.extraction }

// Interpretation is the classified form of a free-text query. Created once
// per query, immutable, never persisted. Exactly the fields required by the
// route are populated.
type Interpretation struct {
	searchRoute    route.Route
	structured     *criteria.Criteria
	semanticText   string
	consultantName string
	question       string
	confidence     Confidence
}

// NewStructured creates a STRUCTURED interpretation.
func NewStructured(c criteria.Criteria, conf Confidence) Interpretation {
	return Interpretation{searchRoute: route.Structured, structured: &c, confidence: conf}
}

// NewSemantic creates a SEMANTIC interpretation.
func NewSemantic(text string, conf Confidence) Interpretation {
	return Interpretation{searchRoute: route.Semantic, semanticText: text, confidence: conf}
}

// NewHybrid creates a HYBRID interpretation carrying both structured criteria
// and semantic query text.
func NewHybrid(c criteria.Criteria, text string, conf Confidence) Interpretation {
	return Interpretation{
		searchRoute:  route.Hybrid,
		structured:   &c,
		semanticText: text,
		confidence:   conf,
	}
}

// NewRAG creates a RAG interpretation: a named consultant plus a question
// about them.
func NewRAG(consultantName, question string, conf Confidence) Interpretation {
	return Interpretation{
		searchRoute:    route.RAG,
		consultantName: consultantName,
		question:       question,
		confidence:     conf,
	}
}

// Route returns the chosen retrieval strategy.
func (i *Interpretation) Route() route.Route { return i.searchRoute }

// Structured returns extracted filter criteria; non-nil only for
// STRUCTURED and HYBRID.
func (i *Interpretation) Structured() *criteria.Criteria { return i.structured }

// SemanticText returns the query text to embed; non-empty only for SEMANTIC
// and HYBRID.
func (i *Interpretation) SemanticText() string { return i.semanticText }

// ConsultantName returns the looked-up name; non-empty only for RAG.
func (i *Interpretation) ConsultantName() string { return i.consultantName }

// Question returns the question about the named consultant; RAG only.
func (i *Interpretation) Question() string { return i.question }

// Confidence returns the classifier confidence scores.
func (i *Interpretation) Confidence() Confidence { return i.confidence }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
