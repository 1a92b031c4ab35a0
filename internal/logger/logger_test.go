package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLogBeforeInit(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)
	globalLogger = nil

	// None of these may panic without a prior Init.
	Info(ctx, "info before init", "k", "v")
	Warn(ctx, "warn before init")
	Error(ctx, "error before init")
	ErrorWithErr(ctx, "wrapped error before init", errors.New("boom"))
	Recommendation(ctx, "AAPL", "WAIT", 0.6, "RSI: 55.0, Trend: neutral, Price Change: 1.00%")
	Portfolio(ctx, "WAIT", "neutral", "total", 1)

	out := buf.String()
	for _, want := range []string{"info before init", "boom", "Recommendation produced", "Portfolio recommendation produced"} {
		if !strings.Contains(out, want) {
			t.Errorf("default-logger fallback missing %q in output:\n%s", want, out)
		}
	}
}

func TestInitWithConfig(t *testing.T) {
	err := InitWithConfig(LogConfig{
		Level:           "DEBUG",
		Format:          "text",
		DetailedLogging: true,
		TracingEnabled:  false,
	})
	if err != nil {
		t.Fatalf("InitWithConfig: %v", err)
	}
	if globalLogger == nil {
		t.Fatal("expected global logger set")
	}
	if !IsDebugEnabled() {
		t.Error("expected detailed logging enabled")
	}
	if IsTracingEnabled() {
		t.Error("expected tracing disabled")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"Warn":    slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
