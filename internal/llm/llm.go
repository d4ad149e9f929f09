package llm

import (
	"context"
	"errors"
	"time"

	"meal-planner-api/internal/shared"
)

// Error taxonomy for the model boundary. Callers match with errors.Is.
var (
	// ErrModelUnavailable means the backing model could not be initialized,
	// typically missing credentials. Fatal, never retried.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrModelCallFailed marks a transient transport or timeout failure of a
	// single outbound call.
	ErrModelCallFailed = errors.New("model call failed")

	// ErrResponseInvalid means the model produced structurally non-conforming
	// output on every attempt of the retry budget.
	ErrResponseInvalid = errors.New("model response invalid")
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt. It is the
// single point of contact with the external model: one outbound call per
// invocation, no interpretation of the response.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// timeoutPolicy bounds a single outbound call. Zero means no deadline beyond
// the caller's context.
type timeoutPolicy time.Duration

func (t timeoutPolicy) apply(ctx context.Context) (context.Context, context.CancelFunc) {
	if t <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(t))
}
