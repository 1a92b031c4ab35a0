package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"market-trend-analyzer/internal/analyzer"
	"market-trend-analyzer/internal/analyzer/analyzerobs"
	"market-trend-analyzer/internal/interfaces"
	"market-trend-analyzer/internal/llm/claude"
	"market-trend-analyzer/internal/llm/llmobs"
	"market-trend-analyzer/internal/llm/noop"
	"market-trend-analyzer/internal/llm/openai"
	"market-trend-analyzer/internal/logger"
	"market-trend-analyzer/internal/marketdata/mdobs"
	"market-trend-analyzer/internal/marketdata/polygon"
	"market-trend-analyzer/internal/marketdata/static"
	"market-trend-analyzer/internal/news"
	"market-trend-analyzer/internal/reclog"
	"market-trend-analyzer/internal/store"
	"market-trend-analyzer/internal/trace"
)

// initializeSystem loads the environment and initializes logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// loadConfig loads the configuration from the default path or
// ANALYZER_CONFIG
func loadConfig(ctx context.Context) (*store.Config, error) {
	path := "config.yaml"
	if v := os.Getenv("ANALYZER_CONFIG"); v != "" {
		path = v
	}
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old recommendation logs if retention is
// configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("ANALYZER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := reclog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeProvider returns the bar provider with observability
func initializeProvider(ctx context.Context, cfg *store.Config) interfaces.BarProvider {
	var provider interfaces.BarProvider
	switch cfg.DataSource {
	case "STATIC":
		logger.Info(ctx, "Using STATIC bar data", "dir", cfg.DataDir)
		provider = static.New(cfg.DataDir)
	default:
		provider = polygon.New(os.Getenv("POLYGON_API_KEY"))
	}
	return mdobs.Wrap(provider)
}

// initializeNarrator returns the LLM narrative provider with observability
func initializeNarrator(ctx context.Context, cfg *store.Config) interfaces.Narrator {
	var narrator interfaces.Narrator
	switch cfg.LLM.Provider {
	case "OPENAI":
		narrator = openai.NewOpenAINarrator(cfg)
	case "CLAUDE":
		narrator = claude.NewClaudeNarrator(cfg)
	default:
		narrator = noop.NewNoopNarrator()
		logger.Warn(ctx, "No LLM provider configured - narratives disabled, rule-based analysis only")
	}
	return llmobs.Wrap(narrator)
}

// initializeAnalyzer assembles the analyzer with observability
func initializeAnalyzer(cfg *store.Config, provider interfaces.BarProvider, narrator interfaces.Narrator) interfaces.Analyzer {
	return analyzerobs.Wrap(analyzer.New(cfg, provider, narrator, news.FromConfig(cfg)))
}
