package noop

import (
	"context"

	"market-trend-analyzer/internal/llm"
	"market-trend-analyzer/internal/logger"
	"market-trend-analyzer/internal/types"
)

// NoopNarrator is the fallback narrative provider used when no LLM is
// configured.
type NoopNarrator struct{}

// NewNoopNarrator returns a provider that always yields the fixed fallback
// string.
func NewNoopNarrator() *NoopNarrator {
	return &NoopNarrator{}
}

// Narrate implements the Narrator interface.
func (n *NoopNarrator) Narrate(ctx context.Context, req types.NarrativeRequest) (string, error) {
	logger.Debug(ctx, "Noop narrator called", "ticker", req.Ticker)
	return llm.FallbackNarrative, nil
}
