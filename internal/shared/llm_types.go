package shared

import (
	"time"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// StepMeta holds operational metadata for one pipeline step (a model call
// plus its parse-and-validate retries).
type StepMeta struct {
	Step     string
	Usage    TokenUsage
	Attempts int
	Latency  time.Duration
}
