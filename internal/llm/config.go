package llm

import (
	"os"
	"time"
)

// Config holds all provider configuration. It is read fresh per operation
// and never mutated by the engine.
type Config struct {
	// Provider selects which backend to use.
	// Values: "openai", "gemini", "anthropic", "mock"
	Provider string

	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Anthropic AnthropicConfig

	// Timeout is the maximum duration for a single request. Default: 60s.
	Timeout time.Duration
}

// OpenAIConfig holds OpenAI-specific configuration. Setting both Endpoint
// and Deployment switches the client to Azure OpenAI.
type OpenAIConfig struct {
	APIKey string
	Model  string // Default: "gpt-4o-mini"

	// Endpoint overrides the base URL. For Azure: the resource endpoint,
	// e.g. "https://myresource.openai.azure.com". For other compatible
	// APIs: their base URL.
	Endpoint string

	// Deployment is the Azure deployment name. Ignored unless Endpoint
	// is also set.
	Deployment string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("QUIZPIX_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("QUIZPIX_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("QUIZPIX_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("QUIZPIX_OPENAI_ENDPOINT"); u != "" {
		cfg.OpenAI.Endpoint = u
	}
	if d := os.Getenv("QUIZPIX_OPENAI_DEPLOYMENT"); d != "" {
		cfg.OpenAI.Deployment = d
	}

	if k := os.Getenv("QUIZPIX_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("QUIZPIX_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("QUIZPIX_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("QUIZPIX_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (OpenAI → Gemini → Anthropic) and returns a Config for the first
// provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return &ConfigError{Provider: "openai", Reason: "QUIZPIX_OPENAI_API_KEY is required"}
		}
		if c.OpenAI.Deployment != "" && c.OpenAI.Endpoint == "" {
			return &ConfigError{Provider: "openai", Reason: "QUIZPIX_OPENAI_ENDPOINT is required when a deployment is set"}
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return &ConfigError{Provider: "gemini", Reason: "QUIZPIX_GEMINI_API_KEY is required"}
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return &ConfigError{Provider: "anthropic", Reason: "QUIZPIX_ANTHROPIC_API_KEY is required"}
		}
	case "mock":
		// No API key needed.
	default:
		return &ConfigError{Provider: c.Provider, Reason: "unknown provider"}
	}
	return nil
}
