package interpret

import (
	"regexp"
	"strings"

	"github.com/hireon/talentsearch/internal/domain/search/criteria"
	"github.com/hireon/talentsearch/internal/domain/search/interp"
	"github.com/hireon/talentsearch/internal/domain/search/route"
)

// Forced-mode extraction confidences. Route confidence is always 1.0 because
// the caller chose the route explicitly.
const (
	forcedRouteConfidence = 1.0

	structuredExtractionConfidence = 0.8
	hybridExtractionConfidence     = 0.7
	semanticExtractionConfidence   = 0.8
	ragExtractionConfidence        = 0.6
)

// skillSynonyms maps common abbreviations to canonical skill names. Applied
// both to heuristic extraction and to classifier output.
var skillSynonyms = map[string]string{
	"js":       "javascript",
	"c#":       "csharp",
	"ts":       "typescript",
	"k8s":      "kubernetes",
	"golang":   "go",
	"postgres": "postgresql",
	"node":     "nodejs",
}

// skillLexicon is the vocabulary the cheap local extractor recognizes. The
// relational skill dictionary is the real authority; this list only needs to
// cover forced-mode queries well enough to build a useful filter.
var skillLexicon = map[string]bool{
	"javascript": true, "typescript": true, "csharp": true, "java": true,
	"kotlin": true, "spring": true, "go": true, "python": true, "django": true,
	"rust": true, "ruby": true, "rails": true, "php": true, "scala": true,
	"elixir": true, "swift": true, "react": true, "angular": true, "vue": true,
	"nodejs": true, "kubernetes": true, "docker": true, "terraform": true,
	"aws": true, "azure": true, "gcp": true, "sql": true, "postgresql": true,
	"mysql": true, "mongodb": true, "redis": true, "kafka": true,
	"elasticsearch": true, "graphql": true, "flutter": true, "dotnet": true,
}

// tokenPattern keeps # and + so "c#" and "c++" survive tokenization.
var tokenPattern = regexp.MustCompile(`[a-zA-Z0-9#+]+`)

// fullNamePattern matches two or more consecutive capitalized words.
var fullNamePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)+)\b`)

// singleNamePattern matches one capitalized word.
var singleNamePattern = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// forcedInterpretation builds a deterministic interpretation for an explicit
// route without calling the completion service.
func forcedInterpretation(text string, forced route.Route) interp.Interpretation {
	switch forced {
	case route.Structured:
		c := criteria.New(extractSkills(text), nil, nil, nil, nil, "")
		conf := interp.NewConfidence(forcedRouteConfidence, structuredExtractionConfidence)
		return interp.NewStructured(c, conf)

	case route.Hybrid:
		c := criteria.New(extractSkills(text), nil, nil, nil, nil, "")
		conf := interp.NewConfidence(forcedRouteConfidence, hybridExtractionConfidence)
		return interp.NewHybrid(c, text, conf)

	case route.RAG:
		conf := interp.NewConfidence(forcedRouteConfidence, ragExtractionConfidence)
		return interp.NewRAG(extractName(text), text, conf)

	default:
		conf := interp.NewConfidence(forcedRouteConfidence, semanticExtractionConfidence)
		return interp.NewSemantic(text, conf)
	}
}

// extractSkills collects lexicon skills mentioned in the text, expanding
// synonyms first. The criteria constructor handles dedup and ordering.
func extractSkills(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)

	var skills []string
	for _, tok := range tokens {
		skills = appendSkill(skills, tok)
	}
	return skills
}

func appendSkill(skills []string, tok string) []string {
	if canonical, ok := skillSynonyms[tok]; ok {
		tok = canonical
	}
	if skillLexicon[tok] {
		skills = append(skills, tok)
	}
	return skills
}

// extractName finds the consultant name in a RAG query. A run of two or more
// capitalized words wins; failing that, the first capitalized word past the
// sentence start. Empty when nothing looks like a name.
func extractName(text string) string {
	if m := fullNamePattern.FindString(text); m != "" {
		return m
	}

	matches := singleNamePattern.FindAllStringIndex(text, -1)
	for _, loc := range matches {
		if loc[0] == 0 {
			// Skip sentence-initial capitalization.
			continue
		}
		return text[loc[0]:loc[1]]
	}
	return ""
}

// normalizeSkills applies synonym expansion to classifier-extracted skill
// names. Unknown names pass through; the repository's skill dictionary drops
// them later.
func normalizeSkills(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if canonical, ok := skillSynonyms[s]; ok {
			s = canonical
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
