package analyzer

import (
	"fmt"
	"math"

	"market-trend-analyzer/internal/types"
)

// recentWindow is how many trailing rows feed the 30-period change metric.
const recentWindow = 30

const insufficientData = "Insufficient data for analysis"

// alternativeStrategies is the fixed low-risk catalog attached to every
// recommendation. It does not depend on the inputs.
func alternativeStrategies() []types.Alternative {
	return []types.Alternative{
		{
			Strategy:       "Index Funds (S&P 500, NASDAQ)",
			Risk:           "Low-Medium",
			ExpectedReturn: "7-10% annually",
			Rationale:      "Diversified exposure with lower volatility",
		},
		{
			Strategy:       "Bond ETFs",
			Risk:           "Low",
			ExpectedReturn: "3-5% annually",
			Rationale:      "Stable income with capital preservation",
		},
		{
			Strategy:       "Dividend Stocks",
			Risk:           "Medium",
			ExpectedReturn: "4-7% annually",
			Rationale:      "Regular income with potential capital appreciation",
		},
	}
}

// Recommend scores the latest indicator row against the rule ladder and
// returns a discrete recommendation. The narrative string is carried through
// verbatim and never participates in scoring: the result is identical with
// or without it.
//
// An empty series yields the insufficient-data sentinel: WAIT with zero
// confidence and Err set.
func Recommend(rows []types.IndicatorRow, narrative string) types.Recommendation {
	if len(rows) == 0 {
		return types.Recommendation{
			Action:     types.ActionWait,
			Confidence: 0.0,
			Err:        insufficientData,
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

	rec := score(latest.RSI, latest.Trend, priceChange30, volatilityPct)
	rec.Narrative = narrative
	return rec
}

// score applies the rule ladder. NaN metrics fire no rule: every comparison
// against NaN is false, which leaves the neutral contribution of 0.
func score(rsi float64, trend types.Trend, priceChange, volatility float64) types.Recommendation {
	recommendationScore := 0
	confidence := 0.5

	// RSI bands. The (50,70] interval intentionally contributes nothing.
	switch {
	case rsi < 30:
		recommendationScore += 2 // oversold, potential buy
	case rsi > 70:
		recommendationScore -= 2 // overbought, potential sell
	case rsi >= 30 && rsi <= 50:
		recommendationScore += 1
	}

	switch trend {
	case types.TrendBullish:
		recommendationScore += 1
	case types.TrendBearish:
		recommendationScore -= 1
	}

	if priceChange > 5 {
		recommendationScore -= 1 // may be overvalued
	} else if priceChange < -5 {
		recommendationScore += 1 // may be undervalued
	}

	if volatility > 3 {
		confidence -= 0.2
	}

	var action types.Action
	var holdingPeriod string
	switch {
	case recommendationScore >= 2:
		action = types.ActionBuy
		confidence = math.Min(0.9, confidence+0.2)
		if volatility < 2 {
			holdingPeriod = "medium-term (1-4 weeks)"
		} else {
			holdingPeriod = "short-term (1-7 days)"
		}
	case recommendationScore <= -2:
		action = types.ActionSell
		confidence = math.Min(0.9, confidence+0.2)
		holdingPeriod = "immediate"
	default:
		action = types.ActionWait
		confidence = 0.6
		holdingPeriod = "monitor for 1-2 weeks"
	}

	return types.Recommendation{
		Action:        action,
		Confidence:    clampConfidence(confidence),
		HoldingPeriod: holdingPeriod,
		Alternatives:  alternativeStrategies(),
		Reasoning:     fmt.Sprintf("RSI: %.1f, Trend: %s, Price Change: %.2f%%", rsi, trend, priceChange),
	}
}

func clampConfidence(c float64) float64 {
	c = math.Max(0, math.Min(0.9, c))
	return math.Round(c*100) / 100
}
