package domain

import "context"

// Completer is the natural-language completion contract. Single round trip,
// no streaming.
type Completer interface {
	Complete(ctx context.Context, prompt string) (CompletionResult, error)
}

// CompletionResult carries the completion text and token usage.
type CompletionResult struct {
	Content      string
	PromptTokens int
	TotalTokens  int
}
