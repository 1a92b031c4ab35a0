package reclog

import (
	"bufio"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"market-trend-analyzer/internal/types"
)

func TestAppend(t *testing.T) {
	t.Setenv("ANALYZER_LOG_DIR", t.TempDir())

	rec := types.Recommendation{
		Action:        types.ActionBuy,
		Confidence:    0.7,
		HoldingPeriod: "medium-term (1-4 weeks)",
		Reasoning:     "RSI: 25.0, Trend: bullish, Price Change: -6.00%",
	}
	if err := Append("AAPL", 187.5, rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := Append("MSFT", 410.2, rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	f, err := os.Open(dailyFilepath(time.Now()))
	if err != nil {
		t.Fatalf("opening daily log: %v", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad json line: %v", err)
		}
		entries = append(entries, e)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Ticker != "AAPL" || entries[0].Price != 187.5 || entries[0].Action != "BUY" {
		t.Errorf("bad first entry: %+v", entries[0])
	}
}

func TestAppendMissingPrice(t *testing.T) {
	t.Setenv("ANALYZER_LOG_DIR", t.TempDir())

	rec := types.Recommendation{Action: types.ActionWait, Confidence: 0.0}
	if err := Append("AAPL", types.Metric(math.NaN()), rec); err != nil {
		t.Fatalf("Append with missing price: %v", err)
	}

	b, err := os.ReadFile(dailyFilepath(time.Now()))
	if err != nil {
		t.Fatalf("opening daily log: %v", err)
	}
	var e Entry
	if err := json.Unmarshal(b[:len(b)-1], &e); err != nil {
		t.Fatalf("bad json line: %v", err)
	}
	if !math.IsNaN(float64(e.Price)) {
		t.Errorf("expected missing price round-tripped as null, got %v", e.Price)
	}
}

func TestAppendReport(t *testing.T) {
	t.Setenv("ANALYZER_LOG_DIR", t.TempDir())

	report := types.PortfolioReport{
		Analyses: map[string]types.Analysis{
			"AAPL": {Recommendation: types.Recommendation{Action: types.ActionBuy, Confidence: 0.7}},
			"MSFT": {Recommendation: types.Recommendation{Action: types.ActionWait, Confidence: 0.6}},
		},
		Summary: types.PortfolioSummary{
			TotalStocks:      3,
			BuyCount:         2,
			WaitCount:        1,
			OverallSentiment: types.TrendBullish,
		},
		Recommendation: types.PortfolioRecommendation{
			Action:    types.PortfolioModerateBuy,
			Rationale: "Moderate buy signals, consider gradual entry",
		},
	}
	if err := AppendReport(report); err != nil {
		t.Fatalf("AppendReport: %v", err)
	}

	b, err := os.ReadFile(reportsFilepath(time.Now()))
	if err != nil {
		t.Fatalf("opening report log: %v", err)
	}
	var e ReportEntry
	if err := json.Unmarshal(b[:len(b)-1], &e); err != nil {
		t.Fatalf("bad report line: %v", err)
	}
	if e.Action != "MODERATE_BUY" || e.Summary.BuyCount != 2 {
		t.Errorf("bad report entry: %+v", e)
	}
	if len(e.Actions) != 2 {
		t.Fatalf("expected per-ticker actions recorded, got %d", len(e.Actions))
	}
	if e.Actions["AAPL"].Action != types.ActionBuy || e.Actions["AAPL"].Confidence != 0.7 {
		t.Errorf("bad AAPL action: %+v", e.Actions["AAPL"])
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ANALYZER_LOG_DIR", dir)

	old := filepath.Join(dir, "2024-01-02.txt")
	if err := os.WriteFile(old, []byte(`{"ticker":"AAPL"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".txt")
	if err := os.WriteFile(fresh, []byte(`{"ticker":"MSFT"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(7); err != nil {
		t.Fatalf("CompressOlder: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expected old log removed after compression")
	}
	if _, err := os.Stat(old + ".gz"); err != nil {
		t.Errorf("expected gzip written: %v", err)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("expected fresh log untouched: %v", err)
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	t.Setenv("ANALYZER_LOG_DIR", t.TempDir())
	if err := CompressOlder(0); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
