package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultOpenRouterURL = "https://openrouter.ai/api/v1"

// OpenRouterJudge scores documents via OpenRouter's OpenAI-compatible
// chat completions endpoint.
type OpenRouterJudge struct {
	client *http.Client
	apiKey string
	apiURL string
	model  string
}

// NewOpenRouterJudge creates the OpenRouter adapter from config.
func NewOpenRouterJudge(cfg Config) *OpenRouterJudge {
	apiURL := strings.TrimRight(cfg.OpenRouterAPIURL, "/")
	if apiURL == "" {
		apiURL = defaultOpenRouterURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenRouterJudge{
		client: &http.Client{Timeout: timeout},
		apiKey: cfg.OpenRouterAPIKey,
		apiURL: apiURL,
		model:  cfg.OpenRouterModel,
	}
}

func (j *OpenRouterJudge) Name() string { return "openrouter" }

type openRouterRequest struct {
	Model       string              `json:"model"`
	Messages    []openRouterMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Score sends the document with the shared rubric and parses the reply.
func (j *OpenRouterJudge) Score(ctx context.Context, text string) (Result, error) {
	if j.apiKey == "" {
		return Result{}, ErrProviderUnavailable
	}

	reqBody := openRouterRequest{
		Model: j.model,
		Messages: []openRouterMessage{
			{Role: "system", Content: systemRubric},
			{Role: "user", Content: userPrompt(text)},
		},
		Temperature: requestTemperature,
		MaxTokens:   requestMaxTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("openrouter: marshal request: %w", err)
	}

	resp, err := doWithRetry(ctx, j.client, func() (*http.Request, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, j.apiURL+"/chat/completions", bytes.NewReader(payload))
		if reqErr != nil {
			return nil, fmt.Errorf("openrouter: create request: %w", reqErr)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+j.apiKey)
		req.Header.Set("HTTP-Referer", "https://aidetector.local")
		req.Header.Set("X-Title", "AI Content Detector")
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

	var envelope openRouterResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Result{}, &ProviderError{Provider: j.Name(), Detail: fmt.Sprintf("decode response body: %v", err)}
	}
	if len(envelope.Choices) == 0 {
		return Result{}, &ProviderError{Provider: j.Name(), Detail: "empty choices array in response"}
	}

	return parseScore(envelope.Choices[0].Message.Content)
}
