package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// throttles outbound provider calls with a shared token bucket
type throttledLLM struct {
	next    LLM
	limiter *rate.Limiter
}

// wraps next with a limiter when limit is positive
func withRateLimit(next LLM, limit float64, burst int) LLM {
	if limit <= 0 {
		return next
	}

	return &throttledLLM{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(limit), max(burst, 1)),
	}
}

func (t *throttledLLM) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	return t.next.GenerateEmbedding(ctx, text)
}

func (t *throttledLLM) StreamCompletion(ctx context.Context, req CompletionRequest) (Stream, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	return t.next.StreamCompletion(ctx, req)
}
