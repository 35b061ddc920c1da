package search

import (
	"testing"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/criteria"
)

func TestScoreConsultant_QualityAverage(t *testing.T) {
	c := domain.ConsultantSummary{QualityScores: []int{80, 60}}
	if got := scoreConsultant(&c); got != 0.7 {
		t.Errorf("expected 0.7, got %v", got)
	}
}

func TestScoreConsultant_HeuristicFallback(t *testing.T) {
	c := domain.ConsultantSummary{CVCount: 2, Skills: []string{"go", "kotlin", "sql"}}
	want := float64(2)*0.1 + float64(3)*0.01
	if got := scoreConsultant(&c); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestScoreConsultant_ClampedByResultConstructor(t *testing.T) {
	// 15 CVs would yield 1.5; result.New clamps to 1.
	c := domain.ConsultantSummary{ID: "c-1", Name: "N", CVCount: 15}
	results := assembleStructured([]domain.ConsultantSummary{c}, nil)
	if results[0].Score() != 1.0 {
		t.Errorf("expected score clamped to 1.0, got %v", results[0].Score())
	}
}

func TestStructuredHighlights(t *testing.T) {
	crit := criteria.New([]string{"kotlin"}, []string{"sql", "rust"}, nil, nil, nil, "")
	c := domain.ConsultantSummary{Skills: []string{"Kotlin", "SQL", "go"}}

	got := structuredHighlights(&c, &crit)
	want := []string{"Has required skill: kotlin", "Has skill: sql"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("highlight %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestAssembleSemantic_SimilarityMeta(t *testing.T) {
	items := []domain.ConsultantSummary{{ID: "c-1", Name: "N"}}
	hits := []domain.SemanticHit{{ConsultantID: "c-1", Distance: 0.25}}

	results := assembleSemantic(items, hits, "query text")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if sim, ok := results[0].Meta()["similarity"].(float64); !ok || sim != 0.75 {
		t.Errorf("expected similarity 0.75 in meta, got %v", results[0].Meta()["similarity"])
	}
}
