package interpret

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/route"
)

type mockCompleter struct {
	content string
	err     error
	calls   int
}

func (m *mockCompleter) Complete(_ context.Context, _ string) (domain.CompletionResult, error) {
	m.calls++
	if m.err != nil {
		return domain.CompletionResult{}, m.err
	}
	return domain.CompletionResult{Content: m.content}, nil
}

func newTestService(completer Completer) *Service {
	return NewService(completer, 128, time.Minute, zap.NewNop())
}

func routePtr(r route.Route) *route.Route { return &r }

func TestInterpret_ForcedStructuredExtractsSkills(t *testing.T) {
	completer := &mockCompleter{content: `should never be called`}
	svc := newTestService(completer)

	got := svc.Interpret(context.Background(), "Find consultants who know Kotlin and Spring", routePtr(route.Structured))

	if got.Route() != route.Structured {
		t.Fatalf("expected STRUCTURED, got %s", got.Route())
	}
	if completer.calls != 0 {
		t.Fatalf("expected no completion calls on forced mode, got %d", completer.calls)
	}

	c := got.Structured()
	if c == nil {
		t.Fatal("expected structured criteria")
	}
	if !reflect.DeepEqual(c.SkillsAll(), []string{"kotlin", "spring"}) {
		t.Errorf("expected skillsAll [kotlin spring], got %v", c.SkillsAll())
	}
	if len(c.SkillsAny()) != 0 {
		t.Errorf("expected empty skillsAny, got %v", c.SkillsAny())
	}

	if got.Confidence().Route() != 1.0 {
		t.Errorf("expected route confidence 1.0, got %v", got.Confidence().Route())
	}
	if got.Confidence().Extraction() != 0.8 {
		t.Errorf("expected extraction confidence 0.8, got %v", got.Confidence().Extraction())
	}
}

func TestInterpret_ForcedModeSynonyms(t *testing.T) {
	svc := newTestService(&mockCompleter{})

	got := svc.Interpret(context.Background(), "need someone with JS and c# experience", routePtr(route.Structured))

	c := got.Structured()
	if c == nil {
		t.Fatal("expected structured criteria")
	}
	if !reflect.DeepEqual(c.SkillsAll(), []string{"csharp", "javascript"}) {
		t.Errorf("expected synonym-expanded skills, got %v", c.SkillsAll())
	}
}

func TestInterpret_ForcedHybridCarriesBothFields(t *testing.T) {
	svc := newTestService(&mockCompleter{})

	text := "senior Python dev with cloud experience"
	got := svc.Interpret(context.Background(), text, routePtr(route.Hybrid))

	if got.Route() != route.Hybrid {
		t.Fatalf("expected HYBRID, got %s", got.Route())
	}
	if got.Structured() == nil {
		t.Error("expected structured criteria on HYBRID")
	}
	if got.SemanticText() != text {
		t.Errorf("expected semantic text to be the query, got %q", got.SemanticText())
	}
	if got.Confidence().Extraction() != 0.7 {
		t.Errorf("expected extraction confidence 0.7, got %v", got.Confidence().Extraction())
	}
}

func TestInterpret_ForcedRAGExtractsName(t *testing.T) {
	svc := newTestService(&mockCompleter{})

	got := svc.Interpret(context.Background(), "What projects has Maria Nilsen worked on?", routePtr(route.RAG))

	if got.Route() != route.RAG {
		t.Fatalf("expected RAG, got %s", got.Route())
	}
	if got.ConsultantName() != "Maria Nilsen" {
		t.Errorf("expected name Maria Nilsen, got %q", got.ConsultantName())
	}
	if got.Question() == "" {
		t.Error("expected question to be populated")
	}
	if got.Confidence().Extraction() != 0.6 {
		t.Errorf("expected extraction confidence 0.6, got %v", got.Confidence().Extraction())
	}
}

func TestInterpret_SemanticClassification(t *testing.T) {
	text := "Experienced fullstack developer who can mentor juniors"
	completer := &mockCompleter{content: `{
		"route": "SEMANTIC",
		"structured": null,
		"semanticText": "` + text + `",
		"consultantName": null,
		"question": null,
		"confidence": {"route": 0.9, "extraction": 0.85}
	}`}
	svc := newTestService(completer)

	got := svc.Interpret(context.Background(), text, nil)

	if got.Route() != route.Semantic {
		t.Fatalf("expected SEMANTIC, got %s", got.Route())
	}
	if got.SemanticText() != text {
		t.Errorf("expected semantic text %q, got %q", text, got.SemanticText())
	}
	if got.Structured() != nil {
		t.Error("expected nil structured criteria on SEMANTIC")
	}
	if got.Confidence().Route() != 0.9 {
		t.Errorf("expected route confidence 0.9, got %v", got.Confidence().Route())
	}
}

func TestInterpret_StructuredClassificationNormalizesSkills(t *testing.T) {
	completer := &mockCompleter{content: "```json\n" + `{
		"route": "STRUCTURED",
		"structured": {
			"skillsAll": ["JS", "Kotlin"],
			"skillsAny": ["postgres"],
			"roles": ["Backend Developer"],
			"locations": ["Oslo"],
			"minQualityScore": 70,
			"availability": "available"
		},
		"semanticText": null,
		"consultantName": null,
		"question": null,
		"confidence": {"route": 0.95, "extraction": 0.9}
	}` + "\n```"}
	svc := newTestService(completer)

	got := svc.Interpret(context.Background(), "backend devs in Oslo with JS and Kotlin", nil)

	if got.Route() != route.Structured {
		t.Fatalf("expected STRUCTURED, got %s", got.Route())
	}
	c := got.Structured()
	if c == nil {
		t.Fatal("expected structured criteria")
	}
	if !reflect.DeepEqual(c.SkillsAll(), []string{"javascript", "kotlin"}) {
		t.Errorf("expected normalized skillsAll, got %v", c.SkillsAll())
	}
	if !reflect.DeepEqual(c.SkillsAny(), []string{"postgresql"}) {
		t.Errorf("expected normalized skillsAny, got %v", c.SkillsAny())
	}
	if c.MinQualityScore() == nil || *c.MinQualityScore() != 70 {
		t.Errorf("expected minQualityScore 70, got %v", c.MinQualityScore())
	}
}

func TestInterpret_MalformedJSONFallsBack(t *testing.T) {
	completer := &mockCompleter{content: `definitely { not json`}
	svc := newTestService(completer)

	text := "some query"
	got := svc.Interpret(context.Background(), text, nil)

	if got.Route() != route.Semantic {
		t.Fatalf("expected SEMANTIC fallback, got %s", got.Route())
	}
	if got.SemanticText() != text {
		t.Errorf("expected fallback semantic text %q, got %q", text, got.SemanticText())
	}
	if got.Confidence().Route() != 0.5 || got.Confidence().Extraction() != 0.5 {
		t.Errorf("expected fallback confidence {0.5, 0.5}, got {%v, %v}",
			got.Confidence().Route(), got.Confidence().Extraction())
	}
}

func TestInterpret_CompleterErrorFallsBack(t *testing.T) {
	completer := &mockCompleter{err: errors.New("provider down")}
	svc := newTestService(completer)

	got := svc.Interpret(context.Background(), "some query", nil)

	if got.Route() != route.Semantic {
		t.Fatalf("expected SEMANTIC fallback, got %s", got.Route())
	}
	if got.Confidence().Route() != 0.5 {
		t.Errorf("expected fallback confidence 0.5, got %v", got.Confidence().Route())
	}
}

func TestInterpret_AdversarialConfidenceClamped(t *testing.T) {
	completer := &mockCompleter{content: `{
		"route": "SEMANTIC",
		"semanticText": "x",
		"confidence": {"route": 42.0, "extraction": -3.5}
	}`}
	svc := newTestService(completer)

	got := svc.Interpret(context.Background(), "x", nil)

	if got.Confidence().Route() != 1.0 {
		t.Errorf("expected route confidence clamped to 1.0, got %v", got.Confidence().Route())
	}
	if got.Confidence().Extraction() != 0.0 {
		t.Errorf("expected extraction confidence clamped to 0.0, got %v", got.Confidence().Extraction())
	}
}

func TestInterpret_Memoization(t *testing.T) {
	completer := &mockCompleter{content: `{
		"route": "SEMANTIC",
		"semanticText": "cached query",
		"confidence": {"route": 0.8, "extraction": 0.8}
	}`}
	svc := newTestService(completer)
	ctx := context.Background()

	first := svc.Interpret(ctx, "cached query", nil)
	second := svc.Interpret(ctx, "cached query", nil)

	if completer.calls != 1 {
		t.Fatalf("expected 1 completion call, got %d", completer.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected structurally equal interpretations from cache")
	}
}

func TestInterpret_CacheKeyIncludesForceMode(t *testing.T) {
	completer := &mockCompleter{content: `{
		"route": "SEMANTIC",
		"semanticText": "q",
		"confidence": {"route": 0.8, "extraction": 0.8}
	}`}
	svc := newTestService(completer)
	ctx := context.Background()

	auto := svc.Interpret(ctx, "q", nil)
	forced := svc.Interpret(ctx, "q", routePtr(route.Structured))

	if auto.Route() == forced.Route() {
		t.Error("expected different interpretations for nil vs forced mode")
	}
	if completer.calls != 1 {
		t.Errorf("expected 1 completion call (forced mode bypasses), got %d", completer.calls)
	}
}

func TestInterpret_UnknownRouteFallsBack(t *testing.T) {
	completer := &mockCompleter{content: `{
		"route": "TELEPATHIC",
		"confidence": {"route": 0.9, "extraction": 0.9}
	}`}
	svc := newTestService(completer)

	got := svc.Interpret(context.Background(), "q", nil)
	if got.Route() != route.Semantic {
		t.Fatalf("expected SEMANTIC fallback for unknown route, got %s", got.Route())
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper tag", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What projects has Maria Nilsen worked on?", "Maria Nilsen"},
		{"Tell me about Anders", "Anders"},
		{"who knows kotlin?", ""},
	}
	for _, tt := range tests {
		if got := extractName(tt.in); got != tt.want {
			t.Errorf("extractName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
