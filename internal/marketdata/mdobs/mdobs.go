package mdobs

import (
	"context"
	"time"

	"market-trend-analyzer/internal/interfaces"
	"market-trend-analyzer/internal/logger"
	"market-trend-analyzer/internal/trace"
	"market-trend-analyzer/internal/types"
)

// observableProvider wraps a BarProvider with logging and tracing
type observableProvider struct {
	provider interfaces.BarProvider
}

var _ interfaces.BarProvider = (*observableProvider)(nil)

// Wrap wraps a bar provider with observability middleware
func Wrap(provider interfaces.BarProvider) interfaces.BarProvider {
	return &observableProvider{provider: provider}
}

func (op *observableProvider) Bars(ctx context.Context, ticker string, from, to time.Time) ([]types.Bar, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.Bars")
	defer span.End()

	logger.Debug(ctx, "Fetching bars",
		"ticker", ticker,
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"),
	)

	bars, err := op.provider.Bars(ctx, ticker, from, to)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch bars", err, "ticker", ticker)
		return nil, err
	}

	logger.Debug(ctx, "Bars fetched", "ticker", ticker, "count", len(bars))
	return bars, nil
}
