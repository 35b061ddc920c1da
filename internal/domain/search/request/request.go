package request

import (
	"fmt"
	"strings"

	"github.com/hireon/talentsearch/internal/domain"
	"github.com/hireon/talentsearch/internal/domain/search/route"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query text length.
	MaxQueryLength = 4096
	DefaultTopK    = 10
	MaxTopK        = 100
)

// ChatRequest is a validated chat-search query.
type ChatRequest struct {
	text           string
	topK           int
	forceMode      *route.Route
	conversationID string
}

// New validates and normalizes chat-search parameters.
// Defaults: topK=10. topK is clamped to 1..100.
func New(text string, topK int, forceMode *route.Route, conversationID string) (ChatRequest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatRequest{}, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}
	if len(text) > MaxQueryLength {
		return ChatRequest{}, fmt.Errorf("%w: text too long (max %d chars)", domain.ErrValidation, MaxQueryLength)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	if forceMode != nil && !forceMode.IsValid() {
		return ChatRequest{}, fmt.Errorf("%w: invalid force mode %q", domain.ErrValidation, *forceMode)
	}

	return ChatRequest{
		text:           text,
		topK:           topK,
		forceMode:      forceMode,
		conversationID: conversationID,
	}, nil
}

// Text returns the raw query text.
func (r *ChatRequest) Text() string { return r.text }

// TopK returns the number of results to return.
func (r *ChatRequest) TopK() int { return r.topK }

// ForceMode returns the deterministic route override, nil when absent.
func (r *ChatRequest) ForceMode() *route.Route { return r.forceMode }

// ConversationID returns the caller-supplied conversation identifier.
func (r *ChatRequest) ConversationID() string { return r.conversationID }
