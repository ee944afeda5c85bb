// Package providers contains completion-service clients used by the
// extraction pipeline. Clients hold no per-call state; concurrent calls
// are independent.
package providers

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when the completion service cannot be used
// because no credential is configured. It is detected before any network
// attempt is made.
var ErrUnavailable = errors.New("completion client not available")

// CompletionClient is the interface for chat/completion requests.
type CompletionClient interface {
	// Complete sends a completion request and returns the raw payload.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// Status reports availability using the same check Complete performs
	// before issuing a call.
	Status() Status

	// Name returns the client identifier (e.g. "openai").
	Name() string
}

// CompletionRequest is a request to the completion service.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string

	// Model overrides the client default when set.
	Model string

	// Generation parameters (client defaults when zero).
	Temperature float64
	MaxTokens   int

	// RequestID correlates logs; generated when empty.
	RequestID string
}

// CompletionResult is the raw payload from a completion call.
type CompletionResult struct {
	// Content is the textual content of the first choice, if any.
	Content string

	PromptTokens     int64
	CompletionTokens int64

	Provider      string
	ModelUsed     string
	RequestID     string
	ExecutionTime time.Duration
}

// Status describes completion-service availability.
type Status struct {
	Available bool   `json:"available"`
	Model     string `json:"model,omitempty"`
	Error     string `json:"error,omitempty"`
}
