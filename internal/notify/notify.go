// Package notify delivers portfolio reports by email. Credentials come from
// SMTP_USERNAME / SMTP_PASSWORD; everything else from the config.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"sort"
	"strings"

	"market-trend-analyzer/internal/logger"
	"market-trend-analyzer/internal/store"
	"market-trend-analyzer/internal/types"
)

// Mailer sends plaintext reports over SMTP.
type Mailer struct {
	host string
	port int
	from string
	to   []string
}

// NewMailer builds a Mailer from the notify config section. Returns nil
// when notification is disabled.
func NewMailer(cfg *store.Config) *Mailer {
	if !cfg.Notify.Enabled {
		return nil
	}
	return &Mailer{
		host: cfg.Notify.SMTPHost,
		port: cfg.Notify.SMTPPort,
		from: cfg.Notify.From,
		to:   cfg.Notify.To,
	}
}

// SendReport emails the formatted portfolio report. Delivery failure is
// returned to the caller but must not abort the analysis run.
func (m *Mailer) SendReport(ctx context.Context, report types.PortfolioReport) error {
	subject := fmt.Sprintf("Market analysis %s: %s",
		report.AnalysisDate, report.Recommendation.Action)
	body := FormatReport(report)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(m.to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n\r\n", subject)
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, m.to, []byte(msg.String())); err != nil {
		return fmt.Errorf("sending report mail: %w", err)
	}
	logger.Info(ctx, "Report mailed", "recipients", len(m.to))
	return nil
}

// FormatReport renders a plaintext summary of a portfolio report with one
// line per ticker, sorted for stable output.
func FormatReport(report types.PortfolioReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Portfolio recommendation: %s (%s)\n", report.Recommendation.Action, report.Recommendation.SuggestedAllocation)
	fmt.Fprintf(&b, "Sentiment: %s | buy %d / sell %d / wait %d of %d\n\n",
		report.Summary.OverallSentiment,
		report.Summary.BuyCount, report.Summary.SellCount, report.Summary.WaitCount,
		report.Summary.TotalStocks)

	tickers := make([]string, 0, len(report.Analyses))
	for t := range report.Analyses {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	for _, t := range tickers {
		a := report.Analyses[t]
		fmt.Fprintf(&b, "%-8s %-4s conf %.2f  %s\n",
			t, a.Recommendation.Action, a.Recommendation.Confidence, a.Recommendation.Reasoning)
	}
	return b.String()
}
