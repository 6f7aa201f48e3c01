package reorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/venuzlabs/feedkit/core"
)

// HTTPCompleter 是对接 LLM 网关的 Completer 实现。
// 网关契约：POST JSON {prompt, max_tokens, temperature} -> {text}。
type HTTPCompleter struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

var _ Completer = (*HTTPCompleter)(nil)

// NewHTTPCompleter 构造 HTTPCompleter，默认超时 10s。
func NewHTTPCompleter(endpoint, apiKey string) *HTTPCompleter {
	return &HTTPCompleter{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type completionRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Text string `json:"text"`
}

func (c *HTTPCompleter) GenerateContent(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", core.NewDomainError(core.ModuleReorder, core.ErrorCodeUnavailable,
			fmt.Sprintf("reorder: completion request: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", core.NewDomainError(core.ModuleReorder, core.ErrorCodeUnavailable,
			fmt.Sprintf("reorder: completion status %d", resp.StatusCode))
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Text, nil
}
