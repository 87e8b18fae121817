package generate

import "time"

// Config controls the batch orchestrator.
type Config struct {
	// BatchSize is the number of questions requested per Phase-1 batch.
	// A single response reliably carries about this many before hitting
	// the token ceiling.
	BatchSize int

	// FillBatchSize caps Phase-2 fill requests. Smaller fill batches hit
	// the exact remaining count more often and waste fewer tokens on
	// overproduction.
	FillBatchSize int

	// MaxRetries bounds consecutive unproductive fill attempts.
	MaxRetries int

	// Delay is the cooperative pause between provider calls, for
	// provider-side rate-limit safety. Tests run with zero.
	Delay time.Duration

	// MaxTokens is the token budget per batch response.
	MaxTokens int

	// Temperature for generation calls.
	Temperature float64
}

// DefaultConfig returns the recommended orchestrator settings.
func DefaultConfig() Config {
	return Config{
		BatchSize:     20,
		FillBatchSize: 10,
		MaxRetries:    3,
		Delay:         time.Second,
		MaxTokens:     8192,
		Temperature:   0.8,
	}
}
