package interfaces

import (
	"context"
	"time"

	"market-trend-analyzer/internal/types"
)

// BarProvider supplies historical daily bars for a ticker over a date range.
// Bars may be returned in any order; the indicator engine sorts them.
// Failures surface as errors to the caller, never as empty data.
type BarProvider interface {
	Bars(ctx context.Context, ticker string, from, to time.Time) ([]types.Bar, error)
}
