package llm

import "context"

// Provider is the uniform call surface over the supported model backends.
// It performs no parsing and no retries: callers decide what a response
// means and whether a failure is worth another attempt.
type Provider interface {
	// Invoke sends a single prompt (optionally with an inlined image) to
	// the backend and returns the raw response text. No state is kept
	// between calls.
	Invoke(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one outbound model call.
type Request struct {
	// Prompt is the full instruction text for this call.
	Prompt string

	// Image is an optional image payload for vision calls. When set,
	// ImageMIME must name its media type (e.g. "image/png").
	Image     []byte
	ImageMIME string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// HasImage reports whether this request carries a vision payload.
func (r Request) HasImage() bool {
	return len(r.Image) > 0
}

// Response holds the backend's output.
type Response struct {
	// Text is the raw response text, exactly as the backend returned it.
	// Interpreting it (JSON or otherwise) is the caller's job.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}
