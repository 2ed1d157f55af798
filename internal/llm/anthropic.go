package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAnthropicURL   = "https://api.anthropic.com"
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"

	// Tokens issued by OAuth-style setup flows use Bearer auth plus a
	// capability header; plain API keys go in x-api-key.
	anthropicOAuthPrefix = "sk-ant-oat01-"
)

// AnthropicJudge scores documents via the Anthropic Messages API.
type AnthropicJudge struct {
	client *http.Client
	apiKey string
	apiURL string
	model  string
}

// NewAnthropicJudge creates the Anthropic adapter from config.
func NewAnthropicJudge(cfg Config) *AnthropicJudge {
	apiURL := strings.TrimRight(cfg.AnthropicAPIURL, "/")
	if apiURL == "" {
		apiURL = defaultAnthropicURL
	}
	model := cfg.AnthropicModel
	if model == "" {
		model = defaultAnthropicModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AnthropicJudge{
		client: &http.Client{Timeout: timeout},
		apiKey: cfg.AnthropicAPIKey,
		apiURL: apiURL,
		model:  model,
	}
}

func (j *AnthropicJudge) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Score sends the document with the shared rubric and parses the reply.
func (j *AnthropicJudge) Score(ctx context.Context, text string) (Result, error) {
	if j.apiKey == "" {
		return Result{}, ErrProviderUnavailable
	}

	reqBody := anthropicRequest{
		Model:       j.model,
		System:      systemRubric,
		Messages:    []anthropicMessage{{Role: "user", Content: userPrompt(text)}},
		Temperature: requestTemperature,
		MaxTokens:   requestMaxTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	resp, err := doWithRetry(ctx, j.client, func() (*http.Request, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, j.apiURL+"/v1/messages", bytes.NewReader(payload))
		if reqErr != nil {
			return nil, fmt.Errorf("anthropic: create request: %w", reqErr)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Anthropic-Version", "2023-06-01")
		if strings.HasPrefix(j.apiKey, anthropicOAuthPrefix) {
			req.Header.Set("Authorization", "Bearer "+j.apiKey)
			req.Header.Set("Anthropic-Beta", "oauth-2025-04-20")
		} else {
			req.Header.Set("X-API-Key", j.apiKey)
		}
		return req, nil
	})
	if err != nil {
		return Result{}, normalizeTransportError(j.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, &ProviderError{Provider: j.Name(), Status: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
	}

	var envelope anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Result{}, &ProviderError{Provider: j.Name(), Detail: fmt.Sprintf("decode response body: %v", err)}
	}
	if len(envelope.Content) == 0 {
		return Result{}, &ProviderError{Provider: j.Name(), Detail: "empty content array in response"}
	}

	return parseScore(envelope.Content[0].Text)
}

// normalizeTransportError maps retry-layer failures into the error
// taxonomy: exhausted retries keep their status and body, timeouts and
// other transport errors carry no status.
func normalizeTransportError(provider string, err error) error {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return &ProviderError{Provider: provider, Status: statusErr.Status, Detail: statusErr.Body}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ProviderError{Provider: provider, Detail: "request timed out"}
	}
	return &ProviderError{Provider: provider, Detail: err.Error()}
}
