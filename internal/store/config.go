package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the explicit configuration passed to every collaborator at
// construction. Credentials never live here; they come from the environment
// (POLYGON_API_KEY, OPENAI_API_KEY, CLAUDE_API_KEY, SMTP_USERNAME,
// SMTP_PASSWORD).
type Config struct {
	Tickers      []string `yaml:"tickers"`
	DataSource   string   `yaml:"data_source"` // POLYGON or STATIC
	DataDir      string   `yaml:"data_dir"`    // bar CSVs for STATIC
	LookbackDays int      `yaml:"lookback_days"`
	Schedule     string   `yaml:"schedule"` // cron expression; empty = one-shot

	Indicators struct {
		SMAFast    int     `yaml:"sma_fast"`
		SMASlow    int     `yaml:"sma_slow"`
		EMAFast    int     `yaml:"ema_fast"`
		EMASlow    int     `yaml:"ema_slow"`
		SignalSpan int     `yaml:"signal_span"`
		RSIPeriod  int     `yaml:"rsi_period"`
		BBWindow   int     `yaml:"bb_window"`
		BBStdDev   float64 `yaml:"bb_stddev"`
		VolWindow  int     `yaml:"vol_window"`
	} `yaml:"indicators"`

	LLM struct {
		Provider    string  `yaml:"provider"` // OPENAI, CLAUDE, or empty
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
	} `yaml:"llm"`

	News struct {
		Enabled      bool `yaml:"enabled"`
		MaxHeadlines int  `yaml:"max_headlines"`
		CacheMinutes int  `yaml:"cache_minutes"`
	} `yaml:"news"`

	Notify struct {
		Enabled  bool     `yaml:"enabled"`
		SMTPHost string   `yaml:"smtp_host"`
		SMTPPort int      `yaml:"smtp_port"`
		From     string   `yaml:"from"`
		To       []string `yaml:"to"`
	} `yaml:"notify"`
}

func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return errors.New("tickers cannot be empty")
	}
	if c.DataSource != "POLYGON" && c.DataSource != "STATIC" {
		return fmt.Errorf("invalid data_source '%s': must be 'POLYGON' or 'STATIC'", c.DataSource)
	}
	if c.DataSource == "STATIC" && c.DataDir == "" {
		return errors.New("data_dir is required when data_source is STATIC")
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("lookback_days must be positive, got %d", c.LookbackDays)
	}
	switch c.LLM.Provider {
	case "", "NONE", "OPENAI", "CLAUDE":
	default:
		return fmt.Errorf("llm.provider must be 'OPENAI', 'CLAUDE', or empty, got '%s'", c.LLM.Provider)
	}
	if c.Notify.Enabled {
		if c.Notify.SMTPHost == "" || len(c.Notify.To) == 0 {
			return errors.New("notify requires smtp_host and at least one recipient")
		}
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.DataSource == "" {
		c.DataSource = "POLYGON"
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = 90
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case "OPENAI":
			c.LLM.Model = "gpt-4o"
		case "CLAUDE":
			c.LLM.Model = "claude-3-sonnet-20240229"
		}
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1000
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.System == "" {
		c.LLM.System = "You are a financial market analyst with expertise in technical analysis and investment strategies."
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 10
	}
	if c.News.CacheMinutes == 0 {
		c.News.CacheMinutes = 60
	}
	if c.Notify.SMTPPort == 0 {
		c.Notify.SMTPPort = 587
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
