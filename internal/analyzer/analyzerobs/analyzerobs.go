package analyzerobs

import (
	"context"

	"market-trend-analyzer/internal/interfaces"
	"market-trend-analyzer/internal/logger"
	"market-trend-analyzer/internal/trace"
	"market-trend-analyzer/internal/types"
)

// observableAnalyzer wraps an Analyzer with logging and tracing
type observableAnalyzer struct {
	analyzer interfaces.Analyzer
}

var _ interfaces.Analyzer = (*observableAnalyzer)(nil)

// Wrap wraps an analyzer with observability middleware
func Wrap(analyzer interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{analyzer: analyzer}
}

func (oa *observableAnalyzer) Analyze(ctx context.Context, ticker string) (types.Analysis, error) {
	ctx, span := trace.StartSpan(ctx, "analyzer.Analyze")
	defer span.End()

	timer := logger.StartOperation(ctx, "analyze-ticker", "ticker", ticker)
	analysis, err := oa.analyzer.Analyze(timer.GetContext(), ticker)
	if err != nil {
		timer.EndWithError(err)
		return types.Analysis{}, err
	}
	timer.End("action", string(analysis.Recommendation.Action), "confidence", analysis.Recommendation.Confidence)
	return analysis, nil
}

func (oa *observableAnalyzer) AnalyzeAll(ctx context.Context, tickers []string) (types.PortfolioReport, error) {
	ctx, span := trace.StartSpan(ctx, "analyzer.AnalyzeAll")
	defer span.End()

	timer := logger.StartOperation(ctx, "analyze-portfolio", "tickers", len(tickers))
	report, err := oa.analyzer.AnalyzeAll(timer.GetContext(), tickers)
	if err != nil {
		timer.EndWithError(err)
		return types.PortfolioReport{}, err
	}
	timer.End("action", string(report.Recommendation.Action))
	return report, nil
}
