package search

import (
	"fmt"
	"strings"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/criteria"
	"github.com/hireon/talentsearch/internal/domain/search/result"
)

// scoreConsultant derives a [0,1] relevance score from CV quality: the mean
// of scored CVs divided by 100. Consultants with no scored CV fall back to a
// crude volume heuristic. result.New clamps either way.
func scoreConsultant(c *domain.ConsultantSummary) float64 {
	if len(c.QualityScores) > 0 {
		sum := 0
		for _, s := range c.QualityScores {
			sum += s
		}
		return float64(sum) / float64(len(c.QualityScores)) / 100.0
	}
	return float64(c.CVCount)*0.1 + float64(len(c.Skills))*0.01
}

// structuredHighlights explains which requested skills the consultant
// carries. Matching is case-insensitive; skills stored and criteria are both
// normalized lowercase already.
func structuredHighlights(c *domain.ConsultantSummary, crit *criteria.Criteria) []string {
	if crit == nil {
		return nil
	}

	have := make(map[string]bool, len(c.Skills))
	for _, s := range c.Skills {
		have[strings.ToLower(s)] = true
	}

	var highlights []string
	for _, s := range crit.SkillsAll() {
		if have[s] {
			highlights = append(highlights, fmt.Sprintf("Has required skill: %s", s))
		}
	}
	for _, s := range crit.SkillsAny() {
		if have[s] {
			highlights = append(highlights, fmt.Sprintf("Has skill: %s", s))
		}
	}
	return highlights
}

// assembleStructured converts summaries into results with skill highlights.
// Used by the structured and hybrid routes.
func assembleStructured(items []domain.ConsultantSummary, crit *criteria.Criteria) []result.Result {
	results := make([]result.Result, 0, len(items))
	for i := range items {
		c := &items[i]
		results = append(results, result.New(
			c.ID, c.Name, scoreConsultant(c),
			structuredHighlights(c, crit),
			consultantMeta(c),
		))
	}
	return results
}

// assembleSemantic converts summaries into results with the fixed semantic
// highlight and a per-hit similarity in Meta. similarity = max(0, 1-distance).
func assembleSemantic(items []domain.ConsultantSummary, hits []domain.SemanticHit, queryText string) []result.Result {
	similarity := make(map[string]float64, len(hits))
	for _, h := range hits {
		sim := 1 - h.Distance
		if sim < 0 {
			sim = 0
		}
		similarity[h.ConsultantID] = sim
	}

	highlight := fmt.Sprintf("Semantically similar to: %q", queryText)

	results := make([]result.Result, 0, len(items))
	for i := range items {
		c := &items[i]
		meta := consultantMeta(c)
		if sim, ok := similarity[c.ID]; ok {
			meta["similarity"] = sim
		}
		results = append(results, result.New(
			c.ID, c.Name, scoreConsultant(c),
			[]string{highlight},
			meta,
		))
	}
	return results
}

func consultantMeta(c *domain.ConsultantSummary) map[string]any {
	return map[string]any{
		"role":         c.Role,
		"location":     c.Location,
		"availability": c.Availability,
		"skills":       c.Skills,
		"cvCount":      c.CVCount,
	}
}
