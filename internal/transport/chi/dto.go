package chi

import (
	"github.com/hireon/talentsearch/internal/domain/search/interp"
	"github.com/hireon/talentsearch/internal/domain/search/route"
	searchuc "github.com/hireon/talentsearch/internal/usecase/search"
)

// chatSearchRequest is the POST /v1/search/chat body.
type chatSearchRequest struct {
	Text           string  `json:"text"`
	TopK           int     `json:"topK"`
	ForceMode      *string `json:"forceMode"`
	ConversationID *string `json:"conversationId"`
}

// chatSearchResponse mirrors the wire shape of a completed chat search.
type chatSearchResponse struct {
	Mode           string             `json:"mode"`
	Results        []searchResultItem `json:"results"`
	Answer         *string            `json:"answer,omitempty"`
	Sources        []string           `json:"sources,omitempty"`
	LatencyMs      int64              `json:"latencyMs"`
	Debug          debugInfo          `json:"debug"`
	ConversationID *string            `json:"conversationId,omitempty"`
}

type searchResultItem struct {
	ConsultantID string         `json:"consultantId"`
	Name         string         `json:"name"`
	Score        float64        `json:"score"`
	Highlights   []string       `json:"highlights,omitempty"`
	Meta         map[string]any `json:"meta,omitempty"`
}

type debugInfo struct {
	Interpretation interpretationDebug `json:"interpretation"`
	Timings        map[string]int64    `json:"timings"`
	Flags          flagsDebug          `json:"flags"`
}

type interpretationDebug struct {
	Route          string           `json:"route"`
	Structured     *structuredDebug `json:"structured,omitempty"`
	SemanticText   *string          `json:"semanticText,omitempty"`
	ConsultantName *string          `json:"consultantName,omitempty"`
	Question       *string          `json:"question,omitempty"`
	Confidence     confidenceDebug  `json:"confidence"`
}

type structuredDebug struct {
	SkillsAll       []string `json:"skillsAll,omitempty"`
	SkillsAny       []string `json:"skillsAny,omitempty"`
	Roles           []string `json:"roles,omitempty"`
	Locations       []string `json:"locations,omitempty"`
	MinQualityScore *int     `json:"minQualityScore,omitempty"`
	Availability    *string  `json:"availability,omitempty"`
}

type confidenceDebug struct {
	Route      float64 `json:"route"`
	Extraction float64 `json:"extraction"`
}

type flagsDebug struct {
	Provider         string `json:"provider"`
	EmbeddingEnabled bool   `json:"embeddingEnabled"`
	HybridEnabled    bool   `json:"hybridEnabled"`
	RAGEnabled       bool   `json:"ragEnabled"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func chatResponseToDTO(resp *searchuc.ChatResponse) chatSearchResponse {
	results := make([]searchResultItem, 0, len(resp.Results))
	for i := range resp.Results {
		r := &resp.Results[i]
		results = append(results, searchResultItem{
			ConsultantID: r.ConsultantID(),
			Name:         r.Name(),
			Score:        r.Score(),
			Highlights:   r.Highlights(),
			Meta:         r.Meta(),
		})
	}

	out := chatSearchResponse{
		Mode:      string(resp.Mode),
		Results:   results,
		Sources:   resp.Sources,
		LatencyMs: resp.LatencyMs,
		Debug: debugInfo{
			Interpretation: interpretationToDTO(&resp.Debug.Interpretation),
			Timings:        resp.Debug.Timings,
			Flags: flagsDebug{
				Provider:         resp.Debug.Flags.Provider,
				EmbeddingEnabled: resp.Debug.Flags.EmbeddingEnabled,
				HybridEnabled:    resp.Debug.Flags.HybridEnabled,
				RAGEnabled:       resp.Debug.Flags.RAGEnabled,
			},
		},
	}
	if resp.Answer != "" {
		out.Answer = &resp.Answer
	}
	if resp.ConversationID != "" {
		out.ConversationID = &resp.ConversationID
	}
	return out
}

func interpretationToDTO(itp *interp.Interpretation) interpretationDebug {
	dto := interpretationDebug{
		Route: string(itp.Route()),
		Confidence: confidenceDebug{
			Route:      itp.Confidence().Route(),
			Extraction: itp.Confidence().Extraction(),
		},
	}

	if c := itp.Structured(); c != nil {
		sd := structuredDebug{
			SkillsAll:       c.SkillsAll(),
			SkillsAny:       c.SkillsAny(),
			Roles:           c.Roles(),
			Locations:       c.Locations(),
			MinQualityScore: c.MinQualityScore(),
		}
		if avail := c.Availability(); avail != "" {
			sd.Availability = &avail
		}
		dto.Structured = &sd
	}
	if text := itp.SemanticText(); text != "" {
		dto.SemanticText = &text
	}
	if name := itp.ConsultantName(); name != "" {
		dto.ConsultantName = &name
	}
	if q := itp.Question(); q != "" {
		dto.Question = &q
	}
	return dto
}

// parseForceMode validates the optional route override. The empty string and
// nil both mean automatic dispatch.
func parseForceMode(raw *string) (*route.Route, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	r := route.Route(*raw)
	if !r.IsValid() {
		return nil, false
	}
	return &r, true
}
