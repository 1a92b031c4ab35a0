package analyzer

import (
	"strings"
	"testing"

	"market-trend-analyzer/internal/types"
)

func recsOf(buys, sells, waits int, conf float64) map[string]types.Recommendation {
	recs := make(map[string]types.Recommendation)
	add := func(prefix string, n int, action types.Action) {
		for i := 0; i < n; i++ {
			recs[prefix+string(rune('A'+i))] = types.Recommendation{
				Action:     action,
				Confidence: conf,
			}
		}
	}
	add("B", buys, types.ActionBuy)
	add("S", sells, types.ActionSell)
	add("W", waits, types.ActionWait)
	return recs
}

func TestAggregatePortfolioEmpty(t *testing.T) {
	summary, rec := AggregatePortfolio(nil)
	if summary.TotalStocks != 0 {
		t.Errorf("expected zero total, got %d", summary.TotalStocks)
	}
	if summary.OverallSentiment != types.TrendNeutral {
		t.Errorf("expected neutral sentiment, got %s", summary.OverallSentiment)
	}
	if rec.Action != types.PortfolioWait {
		t.Errorf("expected WAIT for empty portfolio, got %s", rec.Action)
	}
}

func TestAggregatePortfolioAggressive(t *testing.T) {
	// 7 of 10 buys at 0.75 confidence: buy ratio 0.7 > 0.6, avg conf > 0.7
	summary, rec := AggregatePortfolio(recsOf(7, 0, 3, 0.75))
	if summary.BuyCount != 7 || summary.WaitCount != 3 || summary.TotalStocks != 10 {
		t.Fatalf("bad summary: %+v", summary)
	}
	if rec.Action != types.PortfolioAggressiveBuy {
		t.Errorf("expected AGGRESSIVE_BUY, got %s", rec.Action)
	}
	if rec.SuggestedAllocation != "70% stocks, 30% bonds" {
		t.Errorf("unexpected allocation %q", rec.SuggestedAllocation)
	}
}

func TestAggregatePortfolioModerate(t *testing.T) {
	// buy ratio 0.5 with middling confidence
	_, rec := AggregatePortfolio(recsOf(5, 2, 3, 0.6))
	if rec.Action != types.PortfolioModerateBuy {
		t.Errorf("expected MODERATE_BUY, got %s", rec.Action)
	}
	if rec.SuggestedAllocation != "50% stocks, 50% bonds" {
		t.Errorf("unexpected allocation %q", rec.SuggestedAllocation)
	}
}

func TestAggregatePortfolioDefensive(t *testing.T) {
	// 2 of 10 buys: ratio 0.2 < 0.3
	_, rec := AggregatePortfolio(recsOf(2, 5, 3, 0.6))
	if rec.Action != types.PortfolioDefensive {
		t.Errorf("expected DEFENSIVE, got %s", rec.Action)
	}
	if !strings.Contains(rec.SuggestedAllocation, "70% bonds") {
		t.Errorf("unexpected allocation %q", rec.SuggestedAllocation)
	}
}

func TestAggregatePortfolioMiddleBandWaits(t *testing.T) {
	// ratios in [0.3, 0.4] match no buy tier and no defensive tier
	for _, buys := range []int{3, 4} {
		_, rec := AggregatePortfolio(recsOf(buys, 0, 10-buys, 0.9))
		if rec.Action != types.PortfolioWait {
			t.Errorf("buy ratio %d/10: expected WAIT, got %s", buys, rec.Action)
		}
	}
}

func TestAggregatePortfolioHighRatioLowConfidence(t *testing.T) {
	// ratio 0.7 but avg confidence 0.5: too weak for aggressive, still
	// above the moderate threshold
	_, rec := AggregatePortfolio(recsOf(7, 0, 3, 0.5))
	if rec.Action != types.PortfolioModerateBuy {
		t.Errorf("expected MODERATE_BUY, got %s", rec.Action)
	}
}

func TestAggregatePortfolioSentiment(t *testing.T) {
	summary, _ := AggregatePortfolio(recsOf(6, 1, 3, 0.8))
	if summary.OverallSentiment != types.TrendBullish {
		t.Errorf("expected bullish sentiment, got %s", summary.OverallSentiment)
	}
	summary, _ = AggregatePortfolio(recsOf(1, 6, 3, 0.8))
	if summary.OverallSentiment != types.TrendBearish {
		t.Errorf("expected bearish sentiment, got %s", summary.OverallSentiment)
	}
	summary, _ = AggregatePortfolio(recsOf(3, 3, 4, 0.8))
	if summary.OverallSentiment != types.TrendNeutral {
		t.Errorf("expected neutral sentiment, got %s", summary.OverallSentiment)
	}
}
