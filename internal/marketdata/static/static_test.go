package static

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeCSV(t *testing.T, dir, ticker, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ticker+".csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing csv: %v", err)
	}
}

func TestBars(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAPL", `timestamp,open,high,low,close,volume
2024-01-02,186.0,188.4,185.2,187.5,51234000
2024-01-03,187.5,189.1,186.9,188.2,48100000
2024-01-04,188.2,190.0,187.7,189.9,46900000
`)

	p := New(dir)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 3, 23, 59, 59, 0, time.UTC)

	bars, err := p.Bars(context.Background(), "aapl", from, to)
	if err != nil {
		t.Fatalf("Bars: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars within range, got %d", len(bars))
	}
	if bars[0].Close != 187.5 || bars[1].Close != 188.2 {
		t.Errorf("bad closes: %v, %v", bars[0].Close, bars[1].Close)
	}
}

func TestBarsCoercesMalformedCells(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "MSFT", `timestamp,open,high,low,close,volume
1704153600,410.0,412.5,409.1,n/a,22000000
1704240000,411.2,413.0,410.5,412.8,bad
`)

	p := New(dir)
	bars, err := p.Bars(context.Background(), "MSFT",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Bars: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected malformed cells kept as rows, got %d bars", len(bars))
	}
	if !math.IsNaN(bars[0].Close) {
		t.Errorf("expected NaN close, got %v", bars[0].Close)
	}
	if !math.IsNaN(bars[1].Volume) {
		t.Errorf("expected NaN volume, got %v", bars[1].Volume)
	}
	if bars[0].Open != 410.0 {
		t.Errorf("well-formed cell mangled: %v", bars[0].Open)
	}
}

func TestBarsTimestampFormats(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "GOOGL", `timestamp,open,high,low,close,volume
1704153600,140,141,139,140.5,100
2024-01-03T00:00:00Z,140.5,142,140,141.2,110
2024-01-04,141.2,143,141,142.9,120
`)

	p := New(dir)
	bars, err := p.Bars(context.Background(), "GOOGL",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Bars: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected all formats parsed, got %d bars", len(bars))
	}
	if bars[0].Ts != 1704153600 {
		t.Errorf("epoch row: got %d", bars[0].Ts)
	}
	if bars[1].Ts != time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC).Unix() {
		t.Errorf("rfc3339 row: got %d", bars[1].Ts)
	}
}

func TestBarsUnparseableTimestamp(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "TSLA", `timestamp,open,high,low,close,volume
Jan 2 2024,250,252,248,251,90000
`)
	p := New(dir)
	if _, err := p.Bars(context.Background(), "TSLA", time.Time{}, time.Now()); err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
}

func TestBarsMissingFile(t *testing.T) {
	p := New(t.TempDir())
	if _, err := p.Bars(context.Background(), "NFLX", time.Time{}, time.Now()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
