// Package groq provides a client for the Groq OpenAI-compatible
// chat-completions API, used by the procurement material advisor.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"

	// The upstream rejects oversized prompts; anything beyond this is cut.
	maxPromptChars = 3000

	// Wait applied before the single retry on HTTP 429.
	rateLimitBackoff = 10 * time.Second
)

// Client is an HTTP client for the Groq chat-completions API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	sleep      func(ctx context.Context, d time.Duration) error
}

// Config configures the Groq client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewClient creates a new Groq API client. Calls are paced to one every two
// seconds to stay inside the free-tier request budget.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		sleep:   sleepContext,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends a single-turn prompt and returns the completion text.
// On HTTP 429 it waits a fixed backoff and retries exactly once; a second
// 429 is returned as an error.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("groq: api key not configured")
	}

	if len(prompt) > maxPromptChars {
		prompt = prompt[:maxPromptChars] + "\n[truncated]"
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	text, status, err := c.complete(ctx, prompt, maxTokens)
	if err == nil {
		return text, nil
	}
	if status != http.StatusTooManyRequests {
		return "", err
	}

	if err := c.sleep(ctx, rateLimitBackoff); err != nil {
		return "", err
	}

	text, status, err = c.complete(ctx, prompt, maxTokens)
	if err != nil {
		if status == http.StatusTooManyRequests {
			return "", fmt.Errorf("groq: rate limited after retry: %w", err)
		}
		return "", err
	}
	return text, nil
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int) (string, int, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", 0, fmt.Errorf("groq: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("groq: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("groq: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, fmt.Errorf("groq: API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", resp.StatusCode, fmt.Errorf("groq: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", resp.StatusCode, fmt.Errorf("groq: API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", resp.StatusCode, fmt.Errorf("groq: empty choices in response")
	}

	return parsed.Choices[0].Message.Content, resp.StatusCode, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
