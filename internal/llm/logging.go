package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/quizpix/quizpix/internal/store"
)

// LoggingProvider is a decorator that records every call as an event and
// emits a structured log line. It never fails a request on logging errors.
type LoggingProvider struct {
	inner  Provider
	logger *slog.Logger
	events store.EventRepo
}

// WithLogging wraps a Provider with event recording and structured logging.
// events may be nil when no store is open (e.g. one-shot CLI probes).
func WithLogging(p Provider, logger *slog.Logger, events store.EventRepo) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, logger: logger, events: events}
}

func (l *LoggingProvider) Invoke(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Invoke(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: req.Prompt,
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = resp.Text
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("provider call failed",
			"purpose", purpose,
			"model", data.Model,
			"latency_ms", latencyMs,
			"err", err)
	} else {
		l.logger.Debug("provider call",
			"purpose", purpose,
			"model", data.Model,
			"latency_ms", latencyMs,
			"input_tokens", data.InputTokens,
			"output_tokens", data.OutputTokens)
	}

	if l.events != nil {
		if logErr := l.events.AppendLLMEvent(ctx, data); logErr != nil {
			l.logger.Warn("failed to record provider event", "err", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
