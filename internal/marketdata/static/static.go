// Package static loads bars from per-ticker CSV files, used for dry runs
// and tests without a market data subscription.
package static

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"market-trend-analyzer/internal/interfaces"
	"market-trend-analyzer/internal/types"
)

// Provider reads {dir}/{TICKER}.csv files with a
// timestamp,open,high,low,close,volume header row.
type Provider struct {
	dir string
}

var _ interfaces.BarProvider = (*Provider)(nil)

func New(dir string) *Provider {
	return &Provider{dir: dir}
}

// Bars loads the ticker's CSV and keeps rows whose timestamp falls within
// [from, to]. Malformed numeric cells are coerced to NaN rather than
// rejecting the row; the indicator engine treats NaN as missing.
func (p *Provider) Bars(ctx context.Context, ticker string, from, to time.Time) ([]types.Bar, error) {
	path := filepath.Join(p.dir, strings.ToUpper(ticker)+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("static bars for %s: %w", ticker, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 6

	header := true
	var bars []types.Bar
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("static bars for %s: %w", ticker, err)
		}
		if header {
			header = false
			if strings.EqualFold(rec[0], "timestamp") {
				continue
			}
		}

		ts, err := parseTimestamp(rec[0])
		if err != nil {
			return nil, fmt.Errorf("static bars for %s: %w", ticker, err)
		}
		if ts.Before(from) || ts.After(to) {
			continue
		}

		bars = append(bars, types.Bar{
			Ts:     ts.Unix(),
			Open:   coerce(rec[1]),
			High:   coerce(rec[2]),
			Low:    coerce(rec[3]),
			Close:  coerce(rec[4]),
			Volume: coerce(rec[5]),
		})
	}
	return bars, nil
}

// parseTimestamp accepts epoch seconds, RFC 3339, or a plain date.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// coerce converts a cell to float64, producing NaN for malformed values.
func coerce(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
