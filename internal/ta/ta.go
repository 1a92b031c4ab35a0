// Package ta computes rolling technical indicators over a bar series.
//
// Every rolling statistic uses a minimum period of 1: early rows are
// computed over however many rows exist so far instead of being dropped, so
// the output always has exactly one row per input bar. NaN inputs are
// excluded from window aggregates rather than zero-filled.
package ta

import (
	"math"
	"sort"

	"market-trend-analyzer/internal/types"
)

// Params holds the indicator window sizes. Zero values are replaced by the
// defaults from DefaultParams.
type Params struct {
	SMAFast    int
	SMASlow    int
	EMAFast    int
	EMASlow    int
	SignalSpan int
	RSIPeriod  int
	BBWindow   int
	BBStdDev   float64
	VolWindow  int
}

// DefaultParams returns the standard window set: SMA 20/50, EMA 12/26,
// MACD signal 9, RSI 14, Bollinger 20/2, volatility 20.
func DefaultParams() Params {
	return Params{
		SMAFast:    20,
		SMASlow:    50,
		EMAFast:    12,
		EMASlow:    26,
		SignalSpan: 9,
		RSIPeriod:  14,
		BBWindow:   20,
		BBStdDev:   2.0,
		VolWindow:  20,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.SMAFast <= 0 {
		p.SMAFast = d.SMAFast
	}
	if p.SMASlow <= 0 {
		p.SMASlow = d.SMASlow
	}
	if p.EMAFast <= 0 {
		p.EMAFast = d.EMAFast
	}
	if p.EMASlow <= 0 {
		p.EMASlow = d.EMASlow
	}
	if p.SignalSpan <= 0 {
		p.SignalSpan = d.SignalSpan
	}
	if p.RSIPeriod <= 0 {
		p.RSIPeriod = d.RSIPeriod
	}
	if p.BBWindow <= 0 {
		p.BBWindow = d.BBWindow
	}
	if p.BBStdDev <= 0 {
		p.BBStdDev = d.BBStdDev
	}
	if p.VolWindow <= 0 {
		p.VolWindow = d.VolWindow
	}
	return p
}

// Compute augments bars with indicators using the default windows.
func Compute(bars []types.Bar) []types.IndicatorRow {
	return ComputeWith(DefaultParams(), bars)
}

// ComputeWith augments bars with indicators using the given windows. The
// input is stable-sorted ascending by timestamp first, so callers may pass
// bars in any order. An empty input yields an empty (nil) output.
func ComputeWith(p Params, bars []types.Bar) []types.IndicatorRow {
	if len(bars) == 0 {
		return nil
	}
	p = p.withDefaults()

	sorted := make([]types.Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ts < sorted[j].Ts })

	n := len(sorted)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range sorted {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	smaFast := rollingMean(closes, p.SMAFast)
	smaSlow := rollingMean(closes, p.SMASlow)
	emaFast := ema(closes, p.EMAFast)
	emaSlow := ema(closes, p.EMASlow)

	macd := make([]float64, n)
	for i := range macd {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	macdSignal := ema(macd, p.SignalSpan)

	rsi := relativeStrength(closes, p.RSIPeriod)

	bbMiddle := rollingMean(closes, p.BBWindow)
	bbStd := rollingStd(closes, p.BBWindow)

	volumeSMA := rollingMean(volumes, p.VolWindow)

	priceChange := make([]float64, n)
	priceChange[0] = math.NaN()
	for i := 1; i < n; i++ {
		prev := closes[i-1]
		if math.IsNaN(prev) || math.IsNaN(closes[i]) || prev == 0 {
			priceChange[i] = math.NaN()
			continue
		}
		priceChange[i] = (closes[i] - prev) / prev
	}
	volatility := rollingStd(priceChange, p.VolWindow)

	rows := make([]types.IndicatorRow, n)
	for i := range rows {
		r := types.IndicatorRow{Bar: sorted[i]}
		r.SMA20 = smaFast[i]
		r.SMA50 = smaSlow[i]
		r.EMA12 = emaFast[i]
		r.EMA26 = emaSlow[i]
		r.MACD = macd[i]
		r.MACDSignal = macdSignal[i]
		r.MACDHist = macd[i] - macdSignal[i]
		r.RSI = rsi[i]
		r.BBMiddle = bbMiddle[i]
		r.BBUpper = bbMiddle[i] + p.BBStdDev*bbStd[i]
		r.BBLower = bbMiddle[i] - p.BBStdDev*bbStd[i]
		r.VolumeSMA = volumeSMA[i]
		if volumeSMA[i] == 0 || math.IsNaN(volumeSMA[i]) || math.IsNaN(volumes[i]) {
			r.VolumeRatio = math.NaN()
		} else {
			r.VolumeRatio = volumes[i] / volumeSMA[i]
		}
		r.PriceChange = priceChange[i]
		r.Volatility = volatility[i]

		// NaN comparisons are false, leaving the label neutral.
		r.Trend = types.TrendNeutral
		if closes[i] > smaFast[i] {
			r.Trend = types.TrendBullish
		} else if closes[i] < smaFast[i] {
			r.Trend = types.TrendBearish
		}
		rows[i] = r
	}
	return rows
}

// rollingMean computes a trailing windowed mean with minimum period 1. NaN
// entries are excluded from the window; a window with no valid entries
// yields NaN.
func rollingMean(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	for i := range vals {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		sum, cnt := 0.0, 0
		for j := lo; j <= i; j++ {
			if !math.IsNaN(vals[j]) {
				sum += vals[j]
				cnt++
			}
		}
		if cnt == 0 {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(cnt)
		}
	}
	return out
}

// rollingStd computes a trailing sample standard deviation with minimum
// period 1. A single-entry window has no spread and yields 0; an empty
// window yields NaN.
func rollingStd(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	for i := range vals {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		sum, cnt := 0.0, 0
		for j := lo; j <= i; j++ {
			if !math.IsNaN(vals[j]) {
				sum += vals[j]
				cnt++
			}
		}
		if cnt == 0 {
			out[i] = math.NaN()
			continue
		}
		if cnt == 1 {
			out[i] = 0
			continue
		}
		mean := sum / float64(cnt)
		ss := 0.0
		for j := lo; j <= i; j++ {
			if !math.IsNaN(vals[j]) {
				d := vals[j] - mean
				ss += d * d
			}
		}
		out[i] = math.Sqrt(ss / float64(cnt-1))
	}
	return out
}

// ema computes exponential smoothing with α = 2/(span+1), seeded by the
// first valid value (no bias adjustment: the first output equals the first
// input). NaN entries carry the previous smoothed value forward.
func ema(vals []float64, span int) []float64 {
	out := make([]float64, len(vals))
	alpha := 2.0 / (float64(span) + 1.0)
	prev := math.NaN()
	for i, v := range vals {
		switch {
		case math.IsNaN(v):
			out[i] = prev
		case math.IsNaN(prev):
			prev = v
			out[i] = v
		default:
			prev = alpha*v + (1-alpha)*prev
			out[i] = prev
		}
	}
	return out
}

// relativeStrength computes the RSI as 100 - 100/(1+rs) where rs is the
// ratio of the rolling mean gain to the rolling mean loss over period. A
// zero mean loss yields RSI 100, the asymptotic limit of the formula.
func relativeStrength(closes []float64, period int) []float64 {
	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	gains[0], losses[0] = math.NaN(), math.NaN()
	for i := 1; i < n; i++ {
		if math.IsNaN(closes[i]) || math.IsNaN(closes[i-1]) {
			gains[i], losses[i] = math.NaN(), math.NaN()
			continue
		}
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains[i], losses[i] = d, 0
		} else {
			gains[i], losses[i] = 0, -d
		}
	}

	gain := rollingMean(gains, period)
	loss := rollingMean(losses, period)

	out := make([]float64, n)
	for i := range out {
		switch {
		case math.IsNaN(gain[i]) || math.IsNaN(loss[i]):
			out[i] = math.NaN()
		case loss[i] == 0:
			out[i] = 100
		default:
			rs := gain[i] / loss[i]
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}
