package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"market-trend-analyzer/internal/interfaces"
	"market-trend-analyzer/internal/logger"
	"market-trend-analyzer/internal/notify"
	"market-trend-analyzer/internal/reclog"
	"market-trend-analyzer/internal/store"
	"market-trend-analyzer/internal/trace"
)

func main() {
	if err := initializeSystem(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}

	compressOldLogs(ctx)

	provider := initializeProvider(ctx, cfg)
	narrator := initializeNarrator(ctx, cfg)
	anl := initializeAnalyzer(cfg, provider, narrator)
	mailer := notify.NewMailer(cfg)

	if cfg.Schedule == "" {
		code := 0
		if err := runOnce(ctx, cfg, anl, mailer); err != nil {
			code = 1
		}
		shutdown(ctx)
		os.Exit(code)
	}

	// Scheduled mode: re-run the portfolio analysis on the configured cron
	// expression until interrupted.
	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		if err := runOnce(ctx, cfg, anl, mailer); err != nil {
			logger.ErrorWithErr(ctx, "Scheduled analysis run failed", err)
		}
	})
	if err != nil {
		logger.ErrorWithErr(ctx, "Invalid schedule expression", err, "schedule", cfg.Schedule)
		shutdown(ctx)
		os.Exit(1)
	}
	c.Start()
	logger.Info(ctx, "Analyzer started", "schedule", cfg.Schedule, "tickers", len(cfg.Tickers))

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	logger.Info(ctx, "Shutting down...")
	stopCtx := c.Stop()
	<-stopCtx.Done()
	shutdown(ctx)
}

func runOnce(ctx context.Context, cfg *store.Config, anl interfaces.Analyzer, mailer *notify.Mailer) error {
	report, err := anl.AnalyzeAll(ctx, cfg.Tickers)
	if err != nil {
		return err
	}

	for ticker, analysis := range report.Analyses {
		if err := reclog.Append(ticker, analysis.CurrentPrice, analysis.Recommendation); err != nil {
			logger.Warn(ctx, "Failed to log recommendation", "ticker", ticker, "error", err)
		}
	}
	if err := reclog.AppendReport(report); err != nil {
		logger.Warn(ctx, "Failed to log portfolio report", "error", err)
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to render portfolio report", err)
	} else {
		fmt.Println(string(b))
	}

	if mailer != nil {
		if err := mailer.SendReport(ctx, report); err != nil {
			logger.Warn(ctx, "Failed to mail report", "error", err)
		}
	}
	return nil
}

func shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = trace.Shutdown(shutdownCtx)
	_ = logger.Shutdown(shutdownCtx)
}
