package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/learnloop/learnloop/internal/store"
)

// loggingProvider records every generative call as a durable event.
type loggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

// WithLogging wraps a Provider with event logging. The provider name
// ("anthropic", "openai", "gemini") identifies the backend in the event
// record, distinct from the model that served the request.
func WithLogging(p Provider, provider string, events store.EventRepo) Provider {
	return &loggingProvider{inner: p, provider: provider, events: events}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// The event is best-effort: a logging failure must not fail the call.
	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(ctx, data); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
		}
	}

	return resp, err
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// timeoutProvider bounds each request with a deadline.
type timeoutProvider struct {
	inner Provider
	limit time.Duration
}

// WithTimeout wraps a Provider so every Generate call carries a
// deadline of at most limit.
func WithTimeout(p Provider, limit time.Duration) Provider {
	return &timeoutProvider{inner: p, limit: limit}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.limit)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
