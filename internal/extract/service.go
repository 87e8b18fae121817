package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/quizpix/quizpix/internal/llm"
	"github.com/quizpix/quizpix/internal/quiz"
)

// Config controls the extraction service.
type Config struct {
	// MaxTokens is the token budget for extraction responses.
	MaxTokens int

	// Temperature for extraction calls. Extraction wants determinism.
	Temperature float64
}

// DefaultConfig returns the recommended extraction settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0,
	}
}

// Service runs single-image extraction flows: prompt → provider → parser.
type Service struct {
	provider llm.Provider
	config   Config
}

// New creates an extraction Service.
func New(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

// Result is a successful extraction with its parse diagnostics.
type Result struct {
	Questions   []quiz.Question
	Diagnostics Diagnostics
}

// ExtractQuestions extracts question records from one exam-page image.
// Candidates are promoted with sequential ids starting at 1.
func (s *Service) ExtractQuestions(ctx context.Context, image []byte, mime string) (*Result, error) {
	ctx = llm.WithPurpose(ctx, "extract-questions")

	resp, err := s.provider.Invoke(ctx, llm.Request{
		Prompt:      BuildPrompt(TaskQuestions),
		Image:       image,
		ImageMIME:   mime,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("question extraction call: %w", err)
	}

	candidates, diag, err := Parse(resp.Text, TaskQuestions)
	if err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, len(candidates))
	for i, c := range candidates {
		questions[i] = c.Promote(i + 1)
	}

	return &Result{Questions: questions, Diagnostics: diag}, nil
}

// ExtractAnswerKey extracts a number→letter mapping from one answer-sheet
// image.
func (s *Service) ExtractAnswerKey(ctx context.Context, image []byte, mime string) (quiz.AnswerKey, Diagnostics, error) {
	ctx = llm.WithPurpose(ctx, "extract-answer-key")

	resp, err := s.provider.Invoke(ctx, llm.Request{
		Prompt:      BuildPrompt(TaskAnswerKey),
		Image:       image,
		ImageMIME:   mime,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, Diagnostics{}, fmt.Errorf("answer key extraction call: %w", err)
	}

	return ParseAnswerKey(resp.Text)
}

// Probe issues the text-only connectivity test. The provider is healthy
// when its reply contains "connected" or "status", case-insensitively.
func (s *Service) Probe(ctx context.Context) error {
	ctx = llm.WithPurpose(ctx, "probe")

	resp, err := s.provider.Invoke(ctx, llm.Request{
		Prompt:    BuildProbePrompt(),
		MaxTokens: 64,
	})
	if err != nil {
		return fmt.Errorf("connectivity probe: %w", err)
	}

	lowered := strings.ToLower(resp.Text)
	if !strings.Contains(lowered, "connected") && !strings.Contains(lowered, "status") {
		return fmt.Errorf("connectivity probe: unexpected reply %q", truncate(resp.Text, 120))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
