package llmobs

import (
	"context"

	"market-trend-analyzer/internal/interfaces"
	"market-trend-analyzer/internal/logger"
	"market-trend-analyzer/internal/trace"
	"market-trend-analyzer/internal/types"
)

// observableNarrator wraps a Narrator with logging and tracing
type observableNarrator struct {
	narrator interfaces.Narrator
}

var _ interfaces.Narrator = (*observableNarrator)(nil)

// Wrap wraps a narrator with observability middleware
func Wrap(narrator interfaces.Narrator) interfaces.Narrator {
	return &observableNarrator{narrator: narrator}
}

func (on *observableNarrator) Narrate(ctx context.Context, req types.NarrativeRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Narrate")
	defer span.End()

	logger.Debug(ctx, "Requesting market narrative",
		"ticker", req.Ticker,
		"price", req.CurrentPrice,
		"rsi", req.RSI,
		"trend", string(req.Trend),
	)

	narrative, err := on.narrator.Narrate(ctx, req)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to get market narrative", err, "ticker", req.Ticker)
		return "", err
	}

	logger.Debug(ctx, "Market narrative received", "ticker", req.Ticker, "chars", len(narrative))
	return narrative, nil
}
