package llm

import "context"

// NewProvider creates a Provider from configuration. The returned provider
// is the bare transport: callers that want call recording wrap it with
// WithLogging, and retry policy lives with the caller, not here.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		return NewMockProvider(), nil
	}
	// Unreachable: Validate rejects unknown providers.
	return nil, &ConfigError{Provider: cfg.Provider, Reason: "unknown provider"}
}

// NewProviderFromEnv builds a Provider from QUIZPIX_* environment
// variables, falling back to probing the standard bare API key vars.
func NewProviderFromEnv(ctx context.Context) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg)
}
