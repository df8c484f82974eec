package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/hearthd/hearth-intent/internal/models"
	"github.com/hearthd/hearth-intent/internal/prompts"
)

// AnthropicProvider implements the fallback classifier on top of the
// Anthropic API via langchaingo.
type AnthropicProvider struct {
	model   llms.Model
	timeout time.Duration
}

func NewAnthropicProvider(apiKey, model string, timeout time.Duration) (*AnthropicProvider, error) {
	m, err := anthropic.New(
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Anthropic client: %w", err)
	}
	return &AnthropicProvider{model: m, timeout: timeout}, nil
}

// ClassifyIntent asks the model for a structured intent. The response is
// parsed and validated by the prompts package; a malformed or untrusted
// answer surfaces as an error, never as a half-valid intent.
func (p *AnthropicProvider) ClassifyIntent(ctx context.Context, input string, history []string) (*models.Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := prompts.BuildFallbackPrompt(input, history)
	content, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt,
		llms.WithTemperature(0.1),
		llms.WithMaxTokens(1000),
	)
	if err != nil {
		return nil, fmt.Errorf("fallback model call failed: %w", err)
	}

	intent, err := prompts.ParseIntentResponse(content)
	if err != nil {
		return nil, fmt.Errorf("fallback response rejected: %w", err)
	}
	return intent, nil
}
