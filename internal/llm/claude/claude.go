package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"market-trend-analyzer/internal/llm"
	"market-trend-analyzer/internal/store"
	"market-trend-analyzer/internal/trace"
	"market-trend-analyzer/internal/types"
)

// ClaudeNarrator calls the Anthropic messages API and returns the model text
// verbatim.
type ClaudeNarrator struct {
	cfg      *store.Config
	endpoint string
}

// NewClaudeNarrator creates a Claude-backed narrative provider. The endpoint
// can be overridden with CLAUDE_API_ENDPOINT for proxies.
func NewClaudeNarrator(cfg *store.Config) *ClaudeNarrator {
	endpoint := "https://api.anthropic.com/v1/messages"
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &ClaudeNarrator{cfg: cfg, endpoint: endpoint}
}

func (n *ClaudeNarrator) Narrate(ctx context.Context, req types.NarrativeRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "claude-narrate")
	defer span.End()

	apiKey := os.Getenv("CLAUDE_API_KEY")
	if apiKey == "" {
		return "", errors.New("CLAUDE_API_KEY missing")
	}

	reqBody := map[string]any{
		"model":       n.cfg.LLM.Model,
		"system":      n.cfg.LLM.System,
		"max_tokens":  n.cfg.LLM.MaxTokens,
		"temperature": n.cfg.LLM.Temperature,
		"messages": []map[string]string{
			{"role": "user", "content": llm.BuildPrompt(req)},
		},
	}

	bb, _ := json.Marshal(reqBody)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", n.endpoint, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("claude http %d: %s", resp.StatusCode, string(body))
	}

	var r struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("empty claude response")
	}
	return text, nil
}
