package interpret

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/criteria"
	"github.com/hireon/talentsearch/internal/domain/search/interp"
	"github.com/hireon/talentsearch/internal/domain/search/route"
)

// interpretationDTO mirrors the closed JSON schema the classifier is asked to
// produce. It is the only place classifier output is trusted as far as JSON
// decoding; everything else is validated before conversion.
type interpretationDTO struct {
	Route          string         `json:"route"`
	Structured     *structuredDTO `json:"structured"`
	SemanticText   *string        `json:"semanticText"`
	ConsultantName *string        `json:"consultantName"`
	Question       *string        `json:"question"`
	Confidence     confidenceDTO  `json:"confidence"`
}

type structuredDTO struct {
	SkillsAll       []string `json:"skillsAll"`
	SkillsAny       []string `json:"skillsAny"`
	Roles           []string `json:"roles"`
	Locations       []string `json:"locations"`
	MinQualityScore *int     `json:"minQualityScore"`
	Availability    *string  `json:"availability"`
}

type confidenceDTO struct {
	Route      float64 `json:"route"`
	Extraction float64 `json:"extraction"`
}

// parseInterpretation converts raw classifier output into the immutable
// domain object. originalText backfills semanticText when the classifier
// chose SEMANTIC but omitted the field.
func parseInterpretation(raw, originalText string) (interp.Interpretation, error) {
	cleaned := stripCodeFences(raw)

	var dto interpretationDTO
	if err := json.Unmarshal([]byte(cleaned), &dto); err != nil {
		return interp.Interpretation{}, fmt.Errorf("%w: %v", domain.ErrInterpretationParse, err)
	}

	r := route.Route(strings.ToUpper(strings.TrimSpace(dto.Route)))
	if !r.IsValid() {
		return interp.Interpretation{}, fmt.Errorf("%w: unknown route %q", domain.ErrInterpretationParse, dto.Route)
	}

	// NewConfidence clamps adversarial values into [0,1].
	conf := interp.NewConfidence(dto.Confidence.Route, dto.Confidence.Extraction)

	switch r {
	case route.Structured:
		if dto.Structured == nil {
			return interp.Interpretation{}, fmt.Errorf("%w: STRUCTURED without criteria", domain.ErrInterpretationParse)
		}
		return interp.NewStructured(toCriteria(dto.Structured), conf), nil

	case route.Semantic:
		text := originalText
		if dto.SemanticText != nil && strings.TrimSpace(*dto.SemanticText) != "" {
			text = *dto.SemanticText
		}
		return interp.NewSemantic(text, conf), nil

	case route.Hybrid:
		if dto.Structured == nil {
			return interp.Interpretation{}, fmt.Errorf("%w: HYBRID without criteria", domain.ErrInterpretationParse)
		}
		text := originalText
		if dto.SemanticText != nil && strings.TrimSpace(*dto.SemanticText) != "" {
			text = *dto.SemanticText
		}
		return interp.NewHybrid(toCriteria(dto.Structured), text, conf), nil

	case route.RAG:
		if dto.ConsultantName == nil || strings.TrimSpace(*dto.ConsultantName) == "" {
			return interp.Interpretation{}, fmt.Errorf("%w: RAG without consultant name", domain.ErrInterpretationParse)
		}
		question := originalText
		if dto.Question != nil && strings.TrimSpace(*dto.Question) != "" {
			question = *dto.Question
		}
		return interp.NewRAG(strings.TrimSpace(*dto.ConsultantName), question, conf), nil
	}

	return interp.Interpretation{}, fmt.Errorf("%w: unhandled route %q", domain.ErrInterpretationParse, r)
}

func toCriteria(dto *structuredDTO) criteria.Criteria {
	availability := ""
	if dto.Availability != nil {
		availability = *dto.Availability
	}
	return criteria.New(
		normalizeSkills(dto.SkillsAll),
		normalizeSkills(dto.SkillsAny),
		dto.Roles,
		dto.Locations,
		dto.MinQualityScore,
		availability,
	)
}

// stripCodeFences removes a surrounding markdown code fence, with or without
// a language tag. Classifiers wrap JSON in fences often enough that this is
// cheaper than re-prompting.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		first := strings.TrimSpace(s[:idx])
		if first == "" || strings.EqualFold(first, "json") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
