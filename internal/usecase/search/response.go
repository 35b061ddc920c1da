package search

import (
	"github.com/hireon/talentsearch/internal/domain/search/interp"
	"github.com/hireon/talentsearch/internal/domain/search/result"
	"github.com/hireon/talentsearch/internal/domain/search/route"
)

// Timing phase keys. LatencyMs is their sum, not wall-clock request time.
const (
	PhaseInterpretation = "interpretation"
	PhaseSearch         = "search"
)

// ChatResponse is the assembled outcome of one chat search. Mode reports the
// route actually executed, which may differ from the interpreted or forced
// route after fallback transitions.
type ChatResponse struct {
	Mode           route.Route
	Results        []result.Result
	Answer         string
	Sources        []string
	LatencyMs      int64
	Debug          DebugInfo
	ConversationID string
}

// DebugInfo is diagnostic-only payload; a correct client never depends on it.
type DebugInfo struct {
	Interpretation interp.Interpretation
	Timings        map[string]int64
	Flags          FlagsSnapshot
}

// FlagsSnapshot captures feature enablement at request time.
type FlagsSnapshot struct {
	Provider         string
	EmbeddingEnabled bool
	HybridEnabled    bool
	RAGEnabled       bool
}
