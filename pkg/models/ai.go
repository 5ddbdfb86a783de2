package models

import (
	"context"
	"errors"
)

// Failure modes shared by every ChatProvider implementation. Callers branch
// on these with errors.Is; providers wrap them with call-specific detail.
var (
	ErrProviderUnavailable = errors.New("ai provider unavailable")
	ErrInferenceTimeout    = errors.New("ai inference timeout")
	ErrInvalidResponse     = errors.New("ai provider returned invalid response")
)

// CompletionRequest is the input to a single text-generation call.
type CompletionRequest struct {
	System      string  // system instructions / guardrails
	Prompt      string  // user-visible prompt content
	Temperature float64 // sampling randomness
	MaxTokens   int     // output length cap
}

// ChatProvider is the capability interface all model integrations implement.
// Never call a specific provider directly — always inject this interface so
// tests can substitute a deterministic fake.
type ChatProvider interface {
	// Complete sends one request and returns the raw model output text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Name returns the provider identifier (e.g., "groq", "ollama").
	Name() string
}
