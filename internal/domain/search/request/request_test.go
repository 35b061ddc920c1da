package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/route"
)

func TestNew_TrimsAndDefaults(t *testing.T) {
	req, err := New("  kotlin devs  ", 0, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Text() != "kotlin devs" {
		t.Errorf("expected trimmed text, got %q", req.Text())
	}
	if req.TopK() != DefaultTopK {
		t.Errorf("expected default topK %d, got %d", DefaultTopK, req.TopK())
	}
}

func TestNew_EmptyText(t *testing.T) {
	_, err := New("   ", 10, nil, "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNew_TextTooLong(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxQueryLength+1), 10, nil, "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNew_ClampsTopK(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, DefaultTopK},
		{0, DefaultTopK},
		{1, 1},
		{100, 100},
		{500, MaxTopK},
	}

	for _, tt := range tests {
		req, err := New("q", tt.in, nil, "")
		if err != nil {
			t.Fatalf("topK=%d: unexpected error: %v", tt.in, err)
		}
		if req.TopK() != tt.want {
			t.Errorf("topK=%d: got %d, want %d", tt.in, req.TopK(), tt.want)
		}
	}
}

func TestNew_InvalidForceMode(t *testing.T) {
	bad := route.Route("PSYCHIC")
	_, err := New("q", 10, &bad, "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNew_ValidForceMode(t *testing.T) {
	forced := route.RAG
	req, err := New("what did Maria do", 10, &forced, "conv-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ForceMode() == nil || *req.ForceMode() != route.RAG {
		t.Errorf("expected forced RAG, got %v", req.ForceMode())
	}
	if req.ConversationID() != "conv-7" {
		t.Errorf("expected conversation id preserved, got %q", req.ConversationID())
	}
}
