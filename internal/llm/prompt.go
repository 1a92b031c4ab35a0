// Package llm builds the analysis prompt shared by the narrative providers.
package llm

import (
	"fmt"
	"strings"

	"market-trend-analyzer/internal/types"
)

// FallbackNarrative is returned by the noop provider and whenever a provider
// fails; scoring is unaffected either way.
const FallbackNarrative = "LLM not configured. Using rule-based analysis only."

// BuildPrompt renders the analysis request the providers send to their
// models.
func BuildPrompt(req types.NarrativeRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Analyze the following stock market data for %s and provide investment insights:

Current Price: $%.2f
30-Day Price Change: %.2f%%
Volatility: %.2f%%
RSI (Relative Strength Index): %.2f
Trend: %s

Technical Indicators:
- SMA 20: $%.2f
- SMA 50: $%.2f
- MACD: %.4f
- Bollinger Bands Position: %s
`,
		req.Ticker, req.CurrentPrice, req.PriceChange30D, req.Volatility,
		req.RSI, req.Trend,
		req.Technical.SMA20, req.Technical.SMA50, req.Technical.MACD,
		req.Technical.BBPosition)

	if len(req.Headlines) > 0 {
		b.WriteString("\nRecent Headlines:\n")
		for _, h := range req.Headlines {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	b.WriteString(`
Please provide:
1. Market trend analysis (bullish, bearish, or neutral)
2. Entry recommendation (BUY, SELL, or WAIT)
3. Suggested holding period (short-term: 1-7 days, medium-term: 1-4 weeks, long-term: 1+ months)
4. Risk assessment
5. Alternative investment strategies for safer gains (bonds, ETFs, index funds, etc.)

Format your response as a structured analysis with clear recommendations.`)

	return b.String()
}
