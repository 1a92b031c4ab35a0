package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"market-trend-analyzer/internal/llm"
	"market-trend-analyzer/internal/store"
	"market-trend-analyzer/internal/trace"
	"market-trend-analyzer/internal/types"
)

// OpenAINarrator calls the OpenAI chat-completions API and returns the model
// text verbatim.
type OpenAINarrator struct {
	cfg      *store.Config
	endpoint string
}

func NewOpenAINarrator(cfg *store.Config) *OpenAINarrator {
	endpoint := "https://api.openai.com/v1/chat/completions"
	if ep := os.Getenv("OPENAI_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &OpenAINarrator{cfg: cfg, endpoint: endpoint}
}

func (n *OpenAINarrator) Narrate(ctx context.Context, req types.NarrativeRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-narrate")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	body := map[string]any{
		"model": n.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "system", "content": n.cfg.LLM.System},
			{"role": "user", "content": llm.BuildPrompt(req)},
		},
		"temperature": n.cfg.LLM.Temperature,
		"max_tokens":  n.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", n.endpoint, bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}
	if len(r.Choices) == 0 {
		return "", errors.New("no choices")
	}

	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
