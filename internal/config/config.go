// Package config provides unified configuration loading for the deal finder.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dylangamachefl/grocery-deal-finder/internal/taxonomy"
)

// Config holds all configuration for the deal finder.
type Config struct {
	Chat          ChatConfig          `yaml:"chat"`
	Embedding     EmbeddingConfig     `yaml:"embedding"`
	Classifier    ClassifierConfig    `yaml:"classifier"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	PDF           PDFConfig           `yaml:"pdf"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ChatConfig holds chat-completion model settings.
type ChatConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Model      string        `yaml:"model"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// EmbeddingConfig holds embedding model settings.
type EmbeddingConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
}

// ClassifierConfig holds classifier host settings.
type ClassifierConfig struct {
	ClassifyTimeout time.Duration `yaml:"classify_timeout"`
	BatchTimeout    time.Duration `yaml:"batch_timeout"`
	InitTimeout     time.Duration `yaml:"init_timeout"`
	FallbackParent  string        `yaml:"fallback_parent"`
}

// PipelineConfig holds pipeline and sharding settings.
type PipelineConfig struct {
	ShardSize int `yaml:"shard_size"`
}

// PDFConfig holds PDF conversion settings.
type PDFConfig struct {
	JPEGQuality int `yaml:"jpeg_quality"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment overrides.
// An empty path loads defaults plus environment overrides only.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Chat: ChatConfig{
			BaseURL:    "https://openrouter.ai/api/v1",
			Model:      "google/gemini-2.5-flash-preview-09-2025",
			Timeout:    120 * time.Second,
			MaxRetries: 3,
		},
		Embedding: EmbeddingConfig{
			BaseURL:   "http://localhost:8080/v1",
			Model:     "sentence-transformers/all-MiniLM-L6-v2",
			Dimension: 384,
		},
		Classifier: ClassifierConfig{
			ClassifyTimeout: 10 * time.Second,
			BatchTimeout:    60 * time.Second,
			InitTimeout:     120 * time.Second,
			FallbackParent:  taxonomy.DefaultFallbackParent,
		},
		Pipeline: PipelineConfig{
			ShardSize: 20,
		},
		PDF: PDFConfig{
			JPEGQuality: 85,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Chat.Model == "" {
		return fmt.Errorf("chat model is required")
	}

	if c.Chat.MaxRetries < 0 {
		return fmt.Errorf("chat max_retries must not be negative")
	}

	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding model is required")
	}

	if c.Embedding.Dimension < 1 {
		return fmt.Errorf("embedding dimension must be positive")
	}

	if c.Pipeline.ShardSize < 1 {
		return fmt.Errorf("shard_size must be positive")
	}

	if c.PDF.JPEGQuality < 1 || c.PDF.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100")
	}

	for _, d := range []struct {
		name string
		v    time.Duration
	}{
		{"classify_timeout", c.Classifier.ClassifyTimeout},
		{"batch_timeout", c.Classifier.BatchTimeout},
		{"init_timeout", c.Classifier.InitTimeout},
	} {
		if d.v <= 0 {
			return fmt.Errorf("%s must be positive", d.name)
		}
	}

	if c.Observability.LogFormat != "console" && c.Observability.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s", c.Observability.LogFormat)
	}

	return nil
}

// ChatAPIKey returns the chat-completion API key from the environment.
func (c *Config) ChatAPIKey() (string, error) {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("OPENROUTER_API_KEY environment variable is not set")
}

// EmbeddingAPIKey returns the embedding API key from the environment. The
// embedding endpoint may be a local server that needs no key, so empty is
// allowed.
func (c *Config) EmbeddingAPIKey() string {
	if key := os.Getenv("EMBEDDING_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENROUTER_API_KEY")
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CHAT_BASE_URL"); v != "" {
		cfg.Chat.BaseURL = v
	}

	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.Chat.Model = v
	}

	if v := os.Getenv("EMBEDDING_BASE_URL"); v != "" {
		cfg.Embedding.BaseURL = v
	}

	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}

	if v := os.Getenv("EMBEDDING_DIMENSION"); v != "" {
		var dim int
		if _, err := fmt.Sscanf(v, "%d", &dim); err == nil && dim > 0 {
			cfg.Embedding.Dimension = dim
		}
	}

	if v := os.Getenv("SHARD_SIZE"); v != "" {
		var size int
		if _, err := fmt.Sscanf(v, "%d", &size); err == nil && size > 0 {
			cfg.Pipeline.ShardSize = size
		}
	}

	if v := os.Getenv("FALLBACK_PARENT"); v != "" {
		cfg.Classifier.FallbackParent = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = strings.ToLower(v)
	}
}
