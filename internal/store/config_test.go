package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
tickers:
  - AAPL
  - MSFT
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DataSource != "POLYGON" {
		t.Errorf("expected POLYGON default, got %q", cfg.DataSource)
	}
	if cfg.LookbackDays != 90 {
		t.Errorf("expected lookback default 90, got %d", cfg.LookbackDays)
	}
	if cfg.LLM.MaxTokens != 1000 || cfg.LLM.Temperature != 0.3 {
		t.Errorf("bad llm defaults: %+v", cfg.LLM)
	}
	if cfg.News.MaxHeadlines != 10 || cfg.News.CacheMinutes != 60 {
		t.Errorf("bad news defaults: %+v", cfg.News)
	}
	if cfg.Notify.SMTPPort != 587 {
		t.Errorf("expected smtp port default 587, got %d", cfg.Notify.SMTPPort)
	}
}

func TestLoadConfigProviderModels(t *testing.T) {
	path := writeConfig(t, `
tickers: [AAPL]
llm:
  provider: OPENAI
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("expected default model for OPENAI, got %q", cfg.LLM.Model)
	}

	path = writeConfig(t, `
tickers: [AAPL]
llm:
  provider: CLAUDE
  model: claude-3-opus-20240229
`)
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LLM.Model != "claude-3-opus-20240229" {
		t.Errorf("explicit model overridden: %q", cfg.LLM.Model)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no tickers",
			yaml:    "data_source: POLYGON",
			wantErr: "tickers",
		},
		{
			name:    "bad data source",
			yaml:    "tickers: [AAPL]\ndata_source: KITE",
			wantErr: "data_source",
		},
		{
			name:    "static without dir",
			yaml:    "tickers: [AAPL]\ndata_source: STATIC",
			wantErr: "data_dir",
		},
		{
			name:    "negative lookback",
			yaml:    "tickers: [AAPL]\nlookback_days: -5",
			wantErr: "lookback_days",
		},
		{
			name:    "unknown llm provider",
			yaml:    "tickers: [AAPL]\nllm:\n  provider: GEMINI",
			wantErr: "llm.provider",
		},
		{
			name:    "notify without host",
			yaml:    "tickers: [AAPL]\nnotify:\n  enabled: true",
			wantErr: "notify",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}
