package interfaces

import (
	"context"

	"market-trend-analyzer/internal/types"
)

// Analyzer runs the full per-ticker pipeline (fetch bars, compute
// indicators, narrate, score) and the portfolio-level aggregation.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (types.Analysis, error)
	AnalyzeAll(ctx context.Context, tickers []string) (types.PortfolioReport, error)
}
