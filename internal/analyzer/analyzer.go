// Package analyzer runs the per-ticker analysis pipeline and the
// portfolio-level aggregation.
package analyzer

import (
	"context"
	"math"
	"sync"
	"time"

	"market-trend-analyzer/internal/interfaces"
	"market-trend-analyzer/internal/llm"
	"market-trend-analyzer/internal/logger"
	"market-trend-analyzer/internal/news"
	"market-trend-analyzer/internal/store"
	"market-trend-analyzer/internal/ta"
	"market-trend-analyzer/internal/types"
)

// Analyzer wires the bar provider, indicator engine, narrative provider,
// and scorer. All collaborators are passed in at construction.
type Analyzer struct {
	cfg      *store.Config
	provider interfaces.BarProvider
	narrator interfaces.Narrator
	news     *news.Service
	params   ta.Params
}

var _ interfaces.Analyzer = (*Analyzer)(nil)

// New creates an Analyzer. The news service may be nil; headlines are
// advisory context only.
func New(cfg *store.Config, provider interfaces.BarProvider, narrator interfaces.Narrator, newsSvc *news.Service) *Analyzer {
	return &Analyzer{
		cfg:      cfg,
		provider: provider,
		narrator: narrator,
		news:     newsSvc,
		params: ta.Params{
			SMAFast:    cfg.Indicators.SMAFast,
			SMASlow:    cfg.Indicators.SMASlow,
			EMAFast:    cfg.Indicators.EMAFast,
			EMASlow:    cfg.Indicators.EMASlow,
			SignalSpan: cfg.Indicators.SignalSpan,
			RSIPeriod:  cfg.Indicators.RSIPeriod,
			BBWindow:   cfg.Indicators.BBWindow,
			BBStdDev:   cfg.Indicators.BBStdDev,
			VolWindow:  cfg.Indicators.VolWindow,
		},
	}
}

// Analyze fetches bars for the ticker and runs the full pipeline. Provider
// failures are returned to the caller; narrative failures degrade to a
// fallback string without touching the recommendation.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (types.Analysis, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -a.cfg.LookbackDays)

	bars, err := a.provider.Bars(ctx, ticker, from, to)
	if err != nil {
		return types.Analysis{}, err
	}
	return a.AnalyzeBars(ctx, ticker, bars), nil
}

// AnalyzeBars runs indicators, narrative, and scoring over already-fetched
// bars. It never fails: insufficient data yields the sentinel analysis.
func (a *Analyzer) AnalyzeBars(ctx context.Context, ticker string, bars []types.Bar) types.Analysis {
	rows := ta.ComputeWith(a.params, bars)
	if len(rows) == 0 {
		return types.Analysis{
			Ticker:         ticker,
			Err:            insufficientData,
			Recommendation: Recommend(nil, ""),
			AnalysisDate:   time.Now().Format(time.RFC3339),
		}
	}

	latest := rows[len(rows)-1]
	recent := rows
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	priceChange30 := math.NaN()
	if base := recent[0].Close; base != 0 && !math.IsNaN(base) {
		priceChange30 = (latest.Close - base) / base * 100
	}
	volatilityPct := latest.Volatility * 100

	technical := types.TechnicalSummary{
		SMA20:      types.Metric(latest.SMA20),
		SMA50:      types.Metric(latest.SMA50),
		MACD:       types.Metric(latest.MACD),
		RSI:        types.Metric(latest.RSI),
		BBPosition: latest.BBPosition(),
	}

	narrative := a.narrate(ctx, types.NarrativeRequest{
		Ticker:         ticker,
		CurrentPrice:   latest.Close,
		PriceChange30D: priceChange30,
		Volatility:     volatilityPct,
		RSI:            latest.RSI,
		Trend:          latest.Trend,
		Technical:      technical,
		Headlines:      a.headlines(ctx, ticker),
	})

	rec := Recommend(rows, narrative)
	logger.Recommendation(ctx, ticker, string(rec.Action), rec.Confidence, rec.Reasoning)

	return types.Analysis{
		Ticker:         ticker,
		CurrentPrice:   types.Metric(latest.Close),
		PriceChange30D: types.Metric(priceChange30),
		Volatility:     types.Metric(volatilityPct),
		RSI:            types.Metric(latest.RSI),
		Trend:          latest.Trend,
		Technical:      technical,
		LLMInsights:    narrative,
		Recommendation: rec,
		AnalysisDate:   time.Now().Format(time.RFC3339),
	}
}

// narrate asks the narrator for advisory text. Failures never propagate:
// the scoring path must behave identically without a narrative.
func (a *Analyzer) narrate(ctx context.Context, req types.NarrativeRequest) string {
	if a.narrator == nil {
		return llm.FallbackNarrative
	}
	narrative, err := a.narrator.Narrate(ctx, req)
	if err != nil {
		logger.Warn(ctx, "Narrative unavailable, continuing rule-based only",
			"ticker", req.Ticker, "error", err)
		return "LLM analysis unavailable: " + err.Error()
	}
	return narrative
}

func (a *Analyzer) headlines(ctx context.Context, ticker string) []string {
	if a.news == nil {
		return nil
	}
	hs, err := a.news.Headlines(ctx, ticker)
	if err != nil {
		logger.Warn(ctx, "Headline fetch failed, continuing without news context",
			"ticker", ticker, "error", err)
		return nil
	}
	return hs
}

// AnalyzeAll analyzes every ticker concurrently, then aggregates once all
// per-ticker recommendations are in. Tickers whose bars cannot be fetched
// are logged and skipped, matching the per-symbol error handling of a
// polling loop; they do not abort the portfolio run.
func (a *Analyzer) AnalyzeAll(ctx context.Context, tickers []string) (types.PortfolioReport, error) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		analyses = make(map[string]types.Analysis, len(tickers))
	)

	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			analysis, err := a.Analyze(ctx, ticker)
			if err != nil {
				logger.ErrorWithErr(ctx, "Ticker analysis failed", err, "ticker", ticker)
				return
			}
			mu.Lock()
			analyses[ticker] = analysis
			mu.Unlock()
		}(ticker)
	}
	wg.Wait()

	recs := make(map[string]types.Recommendation, len(analyses))
	for ticker, analysis := range analyses {
		recs[ticker] = analysis.Recommendation
	}

	summary, portfolioRec := AggregatePortfolio(recs)
	logger.Portfolio(ctx, string(portfolioRec.Action), string(summary.OverallSentiment),
		"total", summary.TotalStocks,
		"buy", summary.BuyCount,
		"sell", summary.SellCount,
		"wait", summary.WaitCount,
	)

	return types.PortfolioReport{
		Analyses:       analyses,
		Summary:        summary,
		Recommendation: portfolioRec,
		AnalysisDate:   time.Now().Format(time.RFC3339),
	}, nil
}
