package llm

import (
	"context"
	"fmt"

	"github.com/learnloop/learnloop/internal/store"
)

// NewSingleAttempt creates a Provider that sends each request exactly
// once, bounded by cfg.Timeout, with event logging applied. Callers
// handle failures with an immediate local fallback, so there is no
// retry layer.
func NewSingleAttempt(ctx context.Context, cfg Config, events store.EventRepo) (Provider, error) {
	base, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Provider == "mock" {
		return base, nil
	}
	if cfg.Timeout > 0 {
		base = WithTimeout(base, cfg.Timeout)
	}
	return WithLogging(base, cfg.Provider, events), nil
}

func newBackend(ctx context.Context, cfg Config) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return base, nil
}
