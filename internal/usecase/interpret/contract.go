package interpret

import (
	"context"

	"github.com/hireon/talentsearch/internal/domain"
)

// Completer generates a single chat completion for the classification prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (domain.CompletionResult, error)
}
