package types

import (
	"encoding/json"
	"math"
)

// Metric is a float64 metric that may legitimately be NaN (missing). It
// serializes NaN as JSON null, since encoding/json rejects IEEE NaN values
// outright, and reads null back as NaN.
type Metric float64

func (m Metric) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(m)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(m))
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Metric(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = Metric(f)
	return nil
}

// Trend labels one bar's close relative to its 20-period SMA. The same
// vocabulary describes portfolio-wide sentiment.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// Action is a per-ticker trading recommendation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionWait Action = "WAIT"
)

// PortfolioAction is the aggregate recommendation across all analyzed tickers.
type PortfolioAction string

const (
	PortfolioAggressiveBuy PortfolioAction = "AGGRESSIVE_BUY"
	PortfolioModerateBuy   PortfolioAction = "MODERATE_BUY"
	PortfolioDefensive     PortfolioAction = "DEFENSIVE"
	PortfolioWait          PortfolioAction = "WAIT"
)

// Bar is one sampled OHLCV observation. Malformed numeric input is carried
// as NaN rather than rejected; the indicator engine excludes NaN values from
// its rolling windows.
type Bar struct {
	Ts     int64   `json:"timestamp"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// IndicatorRow is one Bar augmented with derived indicator values. Fields
// that cannot be computed for a row (first-row price change, zero-volume
// SMA) hold NaN.
type IndicatorRow struct {
	Bar

	SMA20 float64 `json:"sma_20"`
	SMA50 float64 `json:"sma_50"`
	EMA12 float64 `json:"ema_12"`
	EMA26 float64 `json:"ema_26"`

	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	MACDHist   float64 `json:"macd_histogram"`

	RSI float64 `json:"rsi"`

	BBMiddle float64 `json:"bb_middle"`
	BBUpper  float64 `json:"bb_upper"`
	BBLower  float64 `json:"bb_lower"`

	VolumeSMA   float64 `json:"volume_sma"`
	VolumeRatio float64 `json:"volume_ratio"`

	PriceChange float64 `json:"price_change"`
	Volatility  float64 `json:"volatility"`

	Trend Trend `json:"trend"`
}

// BBPosition reports where the close sits relative to the Bollinger
// envelope: above_upper, below_lower, or within_bands. Returns unknown when
// any of the inputs is missing.
func (r IndicatorRow) BBPosition() string {
	if math.IsNaN(r.Close) || math.IsNaN(r.BBUpper) || math.IsNaN(r.BBLower) {
		return "unknown"
	}
	switch {
	case r.Close > r.BBUpper:
		return "above_upper"
	case r.Close < r.BBLower:
		return "below_lower"
	default:
		return "within_bands"
	}
}

// Alternative is one entry of the fixed low-risk strategy catalog attached
// to every recommendation.
type Alternative struct {
	Strategy       string `json:"strategy"`
	Risk           string `json:"risk"`
	ExpectedReturn string `json:"expected_return"`
	Rationale      string `json:"rationale"`
}

// Recommendation is the scorer's output for one ticker. Narrative is opaque
// advisory text from the LLM provider; it never influences Action or
// Confidence. Err is set only on the insufficient-data sentinel.
type Recommendation struct {
	Action        Action        `json:"action"`
	Confidence    float64       `json:"confidence"`
	HoldingPeriod string        `json:"holding_period"`
	Alternatives  []Alternative `json:"alternatives"`
	Reasoning     string        `json:"reasoning"`
	Narrative     string        `json:"narrative,omitempty"`
	Err           string        `json:"error,omitempty"`
}

// TechnicalSummary is the indicator snapshot surfaced alongside a
// recommendation and fed to the narrative prompt.
type TechnicalSummary struct {
	SMA20      Metric `json:"sma_20"`
	SMA50      Metric `json:"sma_50"`
	MACD       Metric `json:"macd"`
	RSI        Metric `json:"rsi"`
	BBPosition string `json:"bb_position"`
}

// Analysis is the full per-ticker result: key metrics, the indicator
// snapshot, LLM insights, and the recommendation.
type Analysis struct {
	Ticker         string           `json:"ticker"`
	CurrentPrice   Metric           `json:"current_price"`
	PriceChange30D Metric           `json:"price_change_30d"`
	Volatility     Metric           `json:"volatility"`
	RSI            Metric           `json:"rsi"`
	Trend          Trend            `json:"trend"`
	Technical      TechnicalSummary `json:"technical_summary"`
	LLMInsights    string           `json:"llm_insights,omitempty"`
	Recommendation Recommendation   `json:"recommendation"`
	AnalysisDate   string           `json:"analysis_date"`
	Err            string           `json:"error,omitempty"`
}

// NarrativeRequest carries everything the LLM provider may see when
// producing advisory text for a ticker.
type NarrativeRequest struct {
	Ticker         string
	CurrentPrice   float64
	PriceChange30D float64
	Volatility     float64
	RSI            float64
	Trend          Trend
	Technical      TechnicalSummary
	Headlines      []string
}

// PortfolioSummary counts recommendations across tickers.
type PortfolioSummary struct {
	TotalStocks      int   `json:"total_stocks"`
	BuyCount         int   `json:"buy_recommendations"`
	SellCount        int   `json:"sell_recommendations"`
	WaitCount        int   `json:"wait_recommendations"`
	OverallSentiment Trend `json:"overall_sentiment"`
}

// PortfolioRecommendation is the aggregate action with its suggested
// stock/bond allocation.
type PortfolioRecommendation struct {
	Action              PortfolioAction `json:"action"`
	Rationale           string          `json:"rationale"`
	SuggestedAllocation string          `json:"suggested_allocation"`
}

// PortfolioReport bundles the per-ticker analyses with the portfolio-level
// summary and recommendation.
type PortfolioReport struct {
	Analyses       map[string]Analysis     `json:"individual_analyses"`
	Summary        PortfolioSummary        `json:"portfolio_summary"`
	Recommendation PortfolioRecommendation `json:"portfolio_recommendation"`
	AnalysisDate   string                  `json:"analysis_date"`
}

// NewsArticle is one scraped headline used as optional narrative context.
type NewsArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Symbol      string `json:"symbol"`
}
