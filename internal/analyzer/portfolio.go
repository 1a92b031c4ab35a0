package analyzer

import (
	"market-trend-analyzer/internal/types"
)

// AggregatePortfolio folds per-ticker recommendations into counts, an
// overall sentiment, and a portfolio-level action with a suggested
// allocation. It must only be called once every per-ticker recommendation is
// available.
//
// An empty input yields zero counts, neutral sentiment, and the default WAIT
// recommendation; no ratio is computed over an empty map.
func AggregatePortfolio(recs map[string]types.Recommendation) (types.PortfolioSummary, types.PortfolioRecommendation) {
	summary := types.PortfolioSummary{OverallSentiment: types.TrendNeutral}

	if len(recs) == 0 {
		return summary, waitRecommendation()
	}

	var confidenceSum float64
	for _, r := range recs {
		switch r.Action {
		case types.ActionBuy:
			summary.BuyCount++
		case types.ActionSell:
			summary.SellCount++
		case types.ActionWait:
			summary.WaitCount++
		}
		confidenceSum += r.Confidence
	}
	summary.TotalStocks = len(recs)

	if summary.BuyCount > summary.SellCount {
		summary.OverallSentiment = types.TrendBullish
	} else if summary.SellCount > summary.BuyCount {
		summary.OverallSentiment = types.TrendBearish
	}

	buyRatio := float64(summary.BuyCount) / float64(len(recs))
	avgConfidence := confidenceSum / float64(len(recs))

	return summary, portfolioRecommendation(buyRatio, avgConfidence)
}

// portfolioRecommendation applies the ordered allocation checks. Ratios in
// the inclusive 0.3-0.4 band match none of the first three branches and fall
// through to WAIT.
func portfolioRecommendation(buyRatio, avgConfidence float64) types.PortfolioRecommendation {
	switch {
	case buyRatio > 0.6 && avgConfidence > 0.7:
		return types.PortfolioRecommendation{
			Action:              types.PortfolioAggressiveBuy,
			Rationale:           "Strong buy signals across portfolio with high confidence",
			SuggestedAllocation: "70% stocks, 30% bonds",
		}
	case buyRatio > 0.4:
		return types.PortfolioRecommendation{
			Action:              types.PortfolioModerateBuy,
			Rationale:           "Moderate buy signals, consider gradual entry",
			SuggestedAllocation: "50% stocks, 50% bonds",
		}
	case buyRatio < 0.3:
		return types.PortfolioRecommendation{
			Action:              types.PortfolioDefensive,
			Rationale:           "Weak signals, consider defensive positioning",
			SuggestedAllocation: "30% stocks, 70% bonds/cash",
		}
	default:
		return waitRecommendation()
	}
}

func waitRecommendation() types.PortfolioRecommendation {
	return types.PortfolioRecommendation{
		Action:              types.PortfolioWait,
		Rationale:           "Mixed signals, wait for clearer direction",
		SuggestedAllocation: "40% stocks, 60% bonds/cash",
	}
}
