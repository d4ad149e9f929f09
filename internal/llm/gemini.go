package llm

import (
	"context"
	"fmt"

	"meal-planner-api/internal/config"
	"meal-planner-api/internal/shared"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiClient is a client for the Google Gemini API.
type geminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	name    string
	timeout timeoutPolicy
}

// NewGeminiClient creates a new Gemini API client. The client is constructed
// once and injected; credentials come from configuration, never from hidden
// globals.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrModelUnavailable)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrModelUnavailable, err)
	}

	model := client.GenerativeModel(cfg.LLMModel)
	return &geminiClient{
		client:  client,
		model:   model,
		name:    cfg.LLMModel,
		timeout: timeoutPolicy(cfg.LLMTimeout),
	}, nil
}

// GenerateContent sends a prompt to the Gemini model and returns the
// generated text.
func (c *geminiClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	ctx, cancel := c.timeout.apply(ctx)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("%w: %v", ErrModelCallFailed, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, fmt.Errorf("%w: no content generated", ErrModelCallFailed)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return ContentResponse{}, fmt.Errorf("%w: generated content is not text", ErrModelCallFailed)
	}

	usage := shared.TokenUsage{Model: c.name}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return ContentResponse{Content: string(text), Usage: usage}, nil
}

// Close closes the underlying Gemini client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}
