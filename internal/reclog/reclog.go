// Package reclog appends analysis results as JSON lines under a per-day log
// directory and compresses files past the retention window.
package reclog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"market-trend-analyzer/internal/types"
)

var mu sync.Mutex

// Entry is one logged per-ticker recommendation.
type Entry struct {
	Time          string       `json:"time"`
	Ticker        string       `json:"ticker"`
	Action        string       `json:"action"`
	Confidence    float64      `json:"confidence"`
	HoldingPeriod string       `json:"holding_period"`
	Reasoning     string       `json:"reasoning"`
	Price         types.Metric `json:"price"`
}

// ReportEntry is one logged portfolio-level recommendation.
type ReportEntry struct {
	Time      string                        `json:"time"`
	Summary   types.PortfolioSummary        `json:"summary"`
	Action    string                        `json:"action"`
	Rationale string                        `json:"rationale"`
	Actions   map[string]types.Recommendation `json:"actions,omitempty"`
}

func logDir() string {
	if v := os.Getenv("ANALYZER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func dailyFilepath(t time.Time) string {
	return filepath.Join(logDir(), t.UTC().Format("2006-01-02")+".txt")
}

func reportsFilepath(t time.Time) string {
	return filepath.Join(logDir(), "reports", t.UTC().Format("2006-01-02")+".txt")
}

// Append records one per-ticker recommendation.
func Append(ticker string, price types.Metric, rec types.Recommendation) error {
	e := Entry{
		Ticker:        ticker,
		Action:        string(rec.Action),
		Confidence:    rec.Confidence,
		HoldingPeriod: rec.HoldingPeriod,
		Reasoning:     rec.Reasoning,
		Price:         price,
	}
	now := time.Now().UTC()
	e.Time = now.Format("2006-01-02 15:04:05")
	return appendLine(dailyFilepath(now), e)
}

// AppendReport records the portfolio-level outcome of one run, including
// each ticker's recommendation.
func AppendReport(report types.PortfolioReport) error {
	actions := make(map[string]types.Recommendation, len(report.Analyses))
	for ticker, analysis := range report.Analyses {
		actions[ticker] = analysis.Recommendation
	}
	e := ReportEntry{
		Summary:   report.Summary,
		Action:    string(report.Recommendation.Action),
		Rationale: report.Recommendation.Rationale,
		Actions:   actions,
	}
	now := time.Now().UTC()
	e.Time = now.Format("2006-01-02 15:04:05")
	return appendLine(reportsFilepath(now), e)
}

func appendLine(path string, v any) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips log files whose modification time is past the
// retention window and removes the originals.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return filepath.WalkDir(logDir(), func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".txt" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, e2 := os.Stat(gz); e2 == nil {
			// already compressed on a previous pass
			return os.Remove(p)
		}

		in, e3 := os.Open(p)
		if e3 != nil {
			return nil
		}
		defer in.Close()

		out, e4 := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if e4 != nil {
			return nil
		}
		gw := gzip.NewWriter(out)
		if _, e5 := io.Copy(gw, in); e5 != nil {
			_ = gw.Close()
			_ = out.Close()
			return nil
		}
		_ = gw.Close()
		_ = out.Close()
		return os.Remove(p)
	})
}
