package domain

import "errors"

var (
	// ErrValidation signals malformed caller-supplied search criteria.
	ErrValidation = errors.New("validation failed")
	// ErrConsultantNotFound signals a missing consultant.
	ErrConsultantNotFound = errors.New("consultant not found")
	// ErrProviderMismatch signals that the requested embedding provider/model
	// does not match the configured one.
	ErrProviderMismatch = errors.New("embedding provider mismatch")
	// ErrEmbeddingDisabled signals that the embedding feature is switched off.
	ErrEmbeddingDisabled = errors.New("embedding disabled")
	// ErrEmbeddingGeneration signals an empty or all-zero vector from the
	// provider. Infrastructure failure, never silently swallowed.
	ErrEmbeddingGeneration = errors.New("embedding generation failed")
	// ErrEmbeddingProviderError signals an embedding provider API failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a completion provider API failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrInterpretationParse signals unparsable classifier output. Recovered
	// locally by the interpreter, never surfaced to callers.
	ErrInterpretationParse = errors.New("interpretation parse failed")
)
