// Package embedding decorates the query embedder with logging.
package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/logger"
)

// DefaultSlowThreshold is the latency above which a query embedding is logged as slow.
const DefaultSlowThreshold = 2 * time.Second

// InstrumentedEmbedder wraps Embedder with request logging.
// Transport metrics (requests, duration, tokens) are recorded in transport/openai.
type InstrumentedEmbedder struct {
	inner    domain.Embedder
	provider string
	model    string
	slow     time.Duration
}

// NewInstrumentedEmbedder wraps an embedder with observability.
// slow <= 0 selects DefaultSlowThreshold.
func NewInstrumentedEmbedder(inner domain.Embedder, provider, model string, slow time.Duration) *InstrumentedEmbedder {
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}
	return &InstrumentedEmbedder{inner: inner, provider: provider, model: model, slow: slow}
}

// Embed delegates to the inner embedder and logs the outcome with the request logger.
func (p *InstrumentedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	result, err := p.inner.Embed(ctx, text)

	duration := time.Since(start)

	if err != nil {
		log.Error("Embedding request failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}

	fields := []zap.Field{
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", duration),
		zap.Int("dimensions", len(result.Embedding)),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("total_tokens", result.TotalTokens),
	}
	if duration > p.slow {
		log.Warn("Slow embedding request", fields...)
	} else {
		log.Debug("Embedding request completed", fields...)
	}

	return result, nil
}

// HealthCheck delegates to the inner embedder when it supports health checks.
func (p *InstrumentedEmbedder) HealthCheck(ctx context.Context) error {
	if hc, ok := p.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}
