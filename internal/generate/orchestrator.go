package generate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizpix/quizpix/internal/extract"
	"github.com/quizpix/quizpix/internal/llm"
	"github.com/quizpix/quizpix/internal/quiz"
)

// Orchestrator drives "generate exactly N questions" across multiple
// provider calls: fixed-size initial batches, then a bounded fill loop
// for whatever the initial batches under-delivered.
type Orchestrator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates an Orchestrator. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{provider: provider, config: cfg, logger: logger}
}

// BatchOutcome records one request/response cycle for diagnostics.
type BatchOutcome struct {
	Phase     string // "initial" or "fill"
	Requested int
	Received  int
	Strategy  string // parse strategy that recovered the batch
	Err       string // non-empty when the batch failed
}

// Result is the outcome of one Generate run. Shortfall is non-zero when
// retries were exhausted before reaching the target; callers must not
// treat that as full success silently.
type Result struct {
	Questions []quiz.Question
	Shortfall int
	Batches   []BatchOutcome
}

// Generate produces up to target questions, returning exactly target
// unless retries are exhausted. It never returns more than target. The
// only error it propagates is a total inability to produce any records
// (or context cancellation).
func (o *Orchestrator) Generate(ctx context.Context, target int) (*Result, error) {
	if target < 1 {
		return nil, fmt.Errorf("target count must be at least 1, got %d", target)
	}

	result := &Result{}
	var accumulated []quiz.Question
	var lastErr error

	// Phase 1: initial batches, ceil(target/BatchSize) of them. A batch
	// that under-delivers is logged, not retried; the fill loop owns that.
	numBatches := (target + o.config.BatchSize - 1) / o.config.BatchSize
	for i := 0; i < numBatches && len(accumulated) < target; i++ {
		if i > 0 {
			if err := o.pause(ctx); err != nil {
				return nil, err
			}
		}

		size := min(o.config.BatchSize, target-len(accumulated))
		batch, outcome, err := o.requestBatch(ctx, "initial", size, len(accumulated)+1)
		result.Batches = append(result.Batches, outcome)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			o.logger.Warn("initial batch failed", "batch", i+1, "requested", size, "err", err)
			continue
		}
		if len(batch) < size {
			o.logger.Info("initial batch under-delivered", "batch", i+1, "requested", size, "received", len(batch))
		}
		accumulated = append(accumulated, batch...)
	}

	// Phase 2: fill the shortfall with smaller batches. The retry counter
	// resets only on a full fill batch; a provider that dribbles one
	// record per call must still terminate.
	retryCount := 0
	for len(accumulated) < target && retryCount < o.config.MaxRetries {
		if err := o.pause(ctx); err != nil {
			return nil, err
		}

		missing := target - len(accumulated)
		size := min(o.config.FillBatchSize, missing)
		batch, outcome, err := o.requestBatch(ctx, "fill", size, len(accumulated)+1)
		result.Batches = append(result.Batches, outcome)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			retryCount++
			o.logger.Warn("fill batch failed", "requested", size, "retry", retryCount, "err", err)
			continue
		}

		accumulated = append(accumulated, batch...)
		if len(batch) >= size {
			retryCount = 0
		} else {
			retryCount++
			o.logger.Info("fill batch under-delivered", "requested", size, "received", len(batch), "retry", retryCount)
		}
	}

	// Trim any overshoot from a fill batch that overproduced.
	if len(accumulated) > target {
		accumulated = accumulated[:target]
	}

	if len(accumulated) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("generation produced no questions: %w", lastErr)
		}
		return nil, fmt.Errorf("generation produced no questions")
	}

	result.Questions = accumulated
	result.Shortfall = target - len(accumulated)
	if result.Shortfall > 0 {
		o.logger.Warn("generation finished short", "target", target, "produced", len(accumulated), "shortfall", result.Shortfall)
	}

	return result, nil
}

// requestBatch runs one prompt → provider → parse cycle and promotes the
// candidates with ids continuing from startID.
func (o *Orchestrator) requestBatch(ctx context.Context, phase string, size, startID int) ([]quiz.Question, BatchOutcome, error) {
	outcome := BatchOutcome{Phase: phase, Requested: size}
	ctx = llm.WithPurpose(ctx, "bulk-generation")

	resp, err := o.provider.Invoke(ctx, llm.Request{
		Prompt:      extract.BuildBulkPrompt(size, startID),
		MaxTokens:   o.config.MaxTokens,
		Temperature: o.config.Temperature,
	})
	if err != nil {
		outcome.Err = err.Error()
		return nil, outcome, err
	}

	candidates, diag, err := extract.Parse(resp.Text, extract.TaskBulk)
	if err != nil {
		outcome.Err = err.Error()
		return nil, outcome, err
	}
	outcome.Strategy = diag.Strategy

	if err := checkSequential(candidates, startID); err != nil {
		outcome.Err = err.Error()
		return nil, outcome, err
	}

	questions := make([]quiz.Question, len(candidates))
	for i, c := range candidates {
		questions[i] = c.Promote(startID + i)
	}

	outcome.Received = len(questions)
	return questions, outcome, nil
}

// checkSequential enforces that batch ids run startID, startID+1, …
// with no gaps or repeats.
func checkSequential(candidates []quiz.Candidate, startID int) error {
	for i, c := range candidates {
		if c.Number != startID+i {
			return fmt.Errorf("batch ids not sequential: position %d has id %d, want %d", i, c.Number, startID+i)
		}
	}
	return nil
}

// pause waits the configured inter-batch delay, bailing out early on
// context cancellation.
func (o *Orchestrator) pause(ctx context.Context) error {
	if o.config.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(o.config.Delay):
		return nil
	}
}
