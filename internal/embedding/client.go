// Package embedding provides text-to-vector generation for the classifier.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
)

// Embedder defines the interface for embedding generation. Dimension is the
// fixed output vector length; consumers use it to reject vectors from a
// misconfigured backend.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Client generates embeddings through an OpenAI-compatible embeddings API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimension  int
}

// Config holds embedding client configuration.
type Config struct {
	APIKey    string
	Model     string // e.g. "sentence-transformers/all-MiniLM-L6-v2"
	BaseURL   string
	Dimension int // default 384
	Timeout   time.Duration
}

// NewClient creates a new embedding client. An empty API key is allowed for
// local embedding servers that skip authentication.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "sentence-transformers/all-MiniLM-L6-v2"
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = 384
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimension:  cfg.Dimension,
	}, nil
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingResponse struct {
	Object string          `json:"object"`
	Data   []embeddingData `json:"data"`
	Model  string          `json:"model"`
	Error  *embeddingError `json:"error,omitempty"`
}

type embeddingData struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type embeddingError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Embed generates embeddings for the given texts in a single API call.
// Result order matches input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody := embeddingRequest{
		Input: texts,
		Model: c.model,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, domain.APIError("marshal embeddings request", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/embeddings", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, domain.APIError("create embeddings request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.APIError("send embeddings request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.APIError("read embeddings response", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp embeddingResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil {
			return nil, domain.APIError(fmt.Sprintf("embeddings API: %s (type: %s)", errResp.Error.Message, errResp.Error.Type), nil)
		}
		return nil, domain.APIError(fmt.Sprintf("embeddings API: status %d", resp.StatusCode), nil)
	}

	var embResp embeddingResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, domain.APIError("unmarshal embeddings response", err)
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range embResp.Data {
		if data.Index >= 0 && data.Index < len(embeddings) {
			embeddings[data.Index] = data.Embedding
		}
	}
	for i, e := range embeddings {
		if e == nil {
			return nil, domain.ValidationError(fmt.Sprintf("embeddings API returned no vector for input %d", i), nil)
		}
	}

	return embeddings, nil
}

// EmbedSingle generates an embedding for a single text.
func (c *Client) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, domain.ValidationError("no embedding returned", nil)
	}
	return embeddings[0], nil
}

// Dimension returns the embedding dimension.
func (c *Client) Dimension() int {
	return c.dimension
}

// MockClient provides a deterministic embedding client for tests. Vectors are
// derived from case-folded word tokens plus character trigrams so that
// lexically overlapping strings land near each other, then L2-normalized like
// real model output. Tokens are weighted above trigrams so shared words
// dominate incidental trigram collisions.
type MockClient struct {
	dimension int
	failWith  error
}

// NewMockClient creates a mock embedder with the given dimension.
func NewMockClient(dimension int) *MockClient {
	if dimension <= 0 {
		dimension = 384
	}
	return &MockClient{dimension: dimension}
}

// NewFailingMockClient creates a mock embedder whose calls all fail with err.
func NewFailingMockClient(err error) *MockClient {
	return &MockClient{dimension: 384, failWith: err}
}

// Embed generates deterministic embeddings for texts.
func (c *MockClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c.failWith != nil {
		return nil, c.failWith
	}
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = c.embedText(text)
	}
	return embeddings, nil
}

// EmbedSingle generates a deterministic embedding for a single text.
func (c *MockClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	if c.failWith != nil {
		return nil, c.failWith
	}
	return c.embedText(text), nil
}

// Dimension returns the embedding dimension.
func (c *MockClient) Dimension() int {
	return c.dimension
}

// mockTokenWeight is how much heavier a whole shared word counts than one
// shared trigram.
const mockTokenWeight = 4

func (c *MockClient) embedText(text string) []float32 {
	v := make([]float32, c.dimension)
	folded := strings.ToLower(text)

	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		v[hashToken(tok)%uint32(c.dimension)] += mockTokenWeight
	}

	runes := []rune(folded)
	for i := 0; i+2 < len(runes); i++ {
		h := uint32(17)
		for _, r := range runes[i : i+3] {
			h = h*31 + uint32(r)
		}
		v[h%uint32(c.dimension)] += 1
	}
	return normalize(v)
}

// hashToken is FNV-1a over the token's runes.
func hashToken(tok string) uint32 {
	h := uint32(2166136261)
	for _, r := range tok {
		h = (h ^ uint32(r)) * 16777619
	}
	return h
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
	return v
}

// Ensure implementations satisfy interface.
var (
	_ Embedder = (*Client)(nil)
	_ Embedder = (*MockClient)(nil)
)
