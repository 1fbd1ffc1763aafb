// Package llm provides the chat-completions client used to reach the hosted
// multimodal model for extraction, normalization, list interpretation, and
// matching.
package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
	"github.com/dylangamachefl/grocery-deal-finder/internal/observability"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "google/gemini-2.5-flash-preview-09-2025"
)

// Client handles communication with an OpenRouter-compatible chat API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	retry      *RetryConfig
	logger     *observability.Logger
}

// Config holds chat client configuration.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int // retries after the first attempt; <= 0 uses the default
	Logger     *observability.Logger
}

// Message represents a chat message
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart represents a part of message content (text or image)
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL represents an image URL in the message
type ImageURL struct {
	URL string `json:"url"`
}

// responseFormat requests structured JSON output from the model.
type responseFormat struct {
	Type string `json:"type"`
}

// request represents the API request structure
type request struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// response represents the API response structure
type response struct {
	ID      string   `json:"id"`
	Choices []choice `json:"choices"`
}

type choice struct {
	Message      messageBody `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type messageBody struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewClient creates a new chat client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.ConfigError("chat API key is required", nil)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	retry := DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retry.MaxRetries = cfg.MaxRetries
	}

	return &Client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
		logger:     logger.WithComponent("llm"),
	}, nil
}

// CompleteJSON sends messages and returns the model's reply content, asking
// the model for a JSON object response.
func (c *Client) CompleteJSON(ctx context.Context, messages []Message) (string, error) {
	req := request{
		Model:          c.model,
		Messages:       messages,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", domain.APIError("marshal chat request", err)
	}

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		return c.httpClient.Do(httpReq)
	})
	if err != nil {
		return "", domain.APIError("send chat request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", domain.APIError(fmt.Sprintf("chat API returned status %d: %s", resp.StatusCode, string(bodyBytes)), nil)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", domain.APIError("decode chat response", err)
	}
	if len(parsed.Choices) == 0 {
		return "", domain.APIError("chat response has no choices", nil)
	}

	return stripCodeFence(parsed.Choices[0].Message.Content), nil
}

// TextMessage builds a single-part text message.
func TextMessage(role, text string) Message {
	return Message{
		Role:    role,
		Content: []ContentPart{{Type: "text", Text: text}},
	}
}

// UserImageMessage builds a user message carrying a prompt plus one or more
// images encoded as data URLs.
func UserImageMessage(prompt string, imagePaths []string) (Message, error) {
	parts := []ContentPart{{Type: "text", Text: prompt}}
	for _, path := range imagePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return Message{}, domain.IOError("read image file", err)
		}
		url := fmt.Sprintf("data:%s;base64,%s", mimeTypeFor(path), base64.StdEncoding.EncodeToString(data))
		parts = append(parts, ContentPart{Type: "image_url", ImageURL: &ImageURL{URL: url}})
	}
	return Message{Role: "user", Content: parts}, nil
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// stripCodeFence removes a surrounding markdown code fence some models wrap
// around JSON output despite the response_format hint.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
