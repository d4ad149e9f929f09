package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-planner-api/internal/shared"

	"go.uber.org/zap"
)

const (
	// defaultParseAttempts is the total parse-and-validate budget per prompt,
	// including the first attempt.
	defaultParseAttempts = 3

	// defaultTransportRetries bounds transient call failures separately from
	// parse failures, so worst-case latency stays a small multiple of one call.
	defaultTransportRetries = 3
)

// ExtractJSON strips known non-JSON wrapping from raw model output and
// returns the outermost JSON value. Models routinely wrap their answer in
// markdown fences or lead-in prose despite being told not to; this is the
// first stage of the parse pipeline, before strict decoding.
func ExtractJSON(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.IndexAny(cleaned, "{[")
	if start == -1 {
		return "", fmt.Errorf("no JSON value found in response")
	}

	var end int
	if cleaned[start] == '{' {
		end = strings.LastIndex(cleaned, "}")
	} else {
		end = strings.LastIndex(cleaned, "]")
	}
	if end <= start {
		return "", fmt.Errorf("unterminated JSON value in response")
	}

	return cleaned[start : end+1], nil
}

// StructuredGenerator turns a TextGenerator into a source of validated
// structured values. It re-invokes the generator with the same prompt when
// the output fails to decode, up to a fixed budget. Retries are sequential
// and stateless, so they never partially commit anything.
type StructuredGenerator struct {
	gen              TextGenerator
	logger           *zap.Logger
	parseAttempts    int
	transportRetries int
}

// NewStructuredGenerator wraps gen with the default retry budgets.
func NewStructuredGenerator(gen TextGenerator, logger *zap.Logger) *StructuredGenerator {
	return &StructuredGenerator{
		gen:              gen,
		logger:           logger,
		parseAttempts:    defaultParseAttempts,
		transportRetries: defaultTransportRetries,
	}
}

// GenerateResult reports what one Generate call cost.
type GenerateResult struct {
	Usage    shared.TokenUsage
	Attempts int
	Latency  time.Duration
}

// Generate sends the prompt and feeds the extracted JSON to decode. The
// decode callback must unmarshal into fresh values and validate the result;
// it is called once per attempt, so a failed attempt leaves no residue in
// the caller's state. After the parse budget is exhausted, the error wraps
// ErrResponseInvalid and carries the last raw text for diagnostics.
func (g *StructuredGenerator) Generate(ctx context.Context, step, prompt string, decode func(data []byte) error) (GenerateResult, error) {
	start := time.Now()
	result := GenerateResult{}

	var lastRaw string
	var lastErr error
	transportFailures := 0

	for result.Attempts < g.parseAttempts {
		resp, err := g.gen.GenerateContent(ctx, prompt)
		if err != nil {
			if errors.Is(err, ErrModelCallFailed) && ctx.Err() == nil {
				transportFailures++
				g.logger.Warn("model call failed",
					zap.String("step", step),
					zap.Int("transport_failures", transportFailures),
					zap.Error(err))
				if transportFailures < g.transportRetries {
					continue
				}
			}
			result.Latency = time.Since(start)
			return result, err
		}

		result.Attempts++
		result.Usage = accumulateUsage(result.Usage, resp.Usage)
		lastRaw = resp.Content

		data, err := ExtractJSON(resp.Content)
		if err == nil {
			err = decode([]byte(data))
		}
		if err == nil {
			result.Latency = time.Since(start)
			return result, nil
		}

		lastErr = err
		g.logger.Warn("model response failed validation",
			zap.String("step", step),
			zap.Int("attempt", result.Attempts),
			zap.Error(err))
	}

	result.Latency = time.Since(start)
	return result, fmt.Errorf(
		"%w: %s failed after %d attempts: %v; last response: %s",
		ErrResponseInvalid, step, result.Attempts, lastErr, lastRaw,
	)
}

func accumulateUsage(total, call shared.TokenUsage) shared.TokenUsage {
	total.PromptTokens += call.PromptTokens
	total.CompletionTokens += call.CompletionTokens
	total.TotalTokens += call.TotalTokens
	if call.Model != "" {
		total.Model = call.Model
	}
	return total
}
