package generate

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/quizpix/quizpix/internal/llm"
)

// batchReply builds a well-formed bulk reply with count records numbered
// sequentially from startID.
func batchReply(startID, count int) string {
	var b strings.Builder
	b.WriteString(`{"questions": [`)
	for i := 0; i < count; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{
			"id": %d,
			"passage": "A short passage about topic %d. It has a few sentences. They describe something.",
			"question": "What is the passage %d about?",
			"options": ["One", "Two", "Three", "Four"],
			"answer": "A"
		}`, startID+i, startID+i, startID+i)
	}
	b.WriteString(`]}`)
	return b.String()
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Delay = 0
	return cfg
}

func TestGenerate_ExactTarget(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: batchReply(1, 20)},
		llm.MockResponse{Text: batchReply(21, 20)},
		llm.MockResponse{Text: batchReply(41, 5)},
	)
	o := New(mock, testConfig(), nil)

	result, err := o.Generate(context.Background(), 45)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Questions) != 45 {
		t.Fatalf("expected 45 questions, got %d", len(result.Questions))
	}
	if result.Shortfall != 0 {
		t.Errorf("expected no shortfall, got %d", result.Shortfall)
	}

	// 45 → three initial batches of 20, 20 and 5; no fill calls.
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 provider calls, got %d", mock.CallCount())
	}
	wantSizes := []int{20, 20, 5}
	for i, outcome := range result.Batches {
		if outcome.Phase != "initial" {
			t.Errorf("batch %d: expected initial phase, got %q", i, outcome.Phase)
		}
		if outcome.Requested != wantSizes[i] {
			t.Errorf("batch %d: requested %d, want %d", i, outcome.Requested, wantSizes[i])
		}
	}

	// Ids are sequential across batch boundaries.
	for i, q := range result.Questions {
		if q.ID != i+1 {
			t.Fatalf("question %d has id %d", i, q.ID)
		}
	}
}

func TestGenerate_SingleSmallBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: batchReply(1, 5)})
	o := New(mock, testConfig(), nil)

	result, err := o.Generate(context.Background(), 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Questions) != 5 || mock.CallCount() != 1 {
		t.Fatalf("expected 5 questions from 1 call, got %d from %d", len(result.Questions), mock.CallCount())
	}
}

func TestGenerate_FillRecoversShortfall(t *testing.T) {
	// The initial batch delivers 15 of 20; two fill batches make up the rest.
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: batchReply(1, 15)},
		llm.MockResponse{Text: batchReply(16, 5)},
	)
	o := New(mock, testConfig(), nil)

	result, err := o.Generate(context.Background(), 20)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Questions) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(result.Questions))
	}
	if result.Shortfall != 0 {
		t.Errorf("expected no shortfall, got %d", result.Shortfall)
	}

	// The fill request continues numbering from where the run stands.
	fill := result.Batches[1]
	if fill.Phase != "fill" || fill.Requested != 5 {
		t.Errorf("unexpected fill outcome: %+v", fill)
	}
	if !strings.Contains(mock.Calls[1].Prompt, "starting at id 16") {
		t.Error("fill prompt does not continue the id sequence")
	}
}

func TestGenerate_RetriesExhausted(t *testing.T) {
	// The initial batch delivers 2 of 5; every fill reply is garbage.
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: batchReply(1, 2)},
		llm.MockResponse{Text: "I cannot do that."},
		llm.MockResponse{Text: "I cannot do that."},
		llm.MockResponse{Text: "I cannot do that."},
	)
	o := New(mock, testConfig(), nil)

	result, err := o.Generate(context.Background(), 5)
	if err != nil {
		t.Fatalf("a partial run reports shortfall, not error: %v", err)
	}
	if len(result.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(result.Questions))
	}
	if result.Shortfall != 3 {
		t.Errorf("expected shortfall 3, got %d", result.Shortfall)
	}

	// Exactly MaxRetries fill attempts after the single initial batch.
	if mock.CallCount() != 4 {
		t.Errorf("expected 1 initial + 3 fill calls, got %d", mock.CallCount())
	}
}

func TestGenerate_DribblingFillsTerminate(t *testing.T) {
	// Each fill under-delivers one record. The retry counter only resets on
	// a full batch, so the loop must stop after MaxRetries partial fills.
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: batchReply(1, 10)},
		llm.MockResponse{Text: batchReply(11, 1)},
		llm.MockResponse{Text: batchReply(12, 1)},
		llm.MockResponse{Text: batchReply(13, 1)},
	)
	o := New(mock, testConfig(), nil)

	result, err := o.Generate(context.Background(), 20)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Questions) != 13 {
		t.Fatalf("expected 13 questions, got %d", len(result.Questions))
	}
	if result.Shortfall != 7 {
		t.Errorf("expected shortfall 7, got %d", result.Shortfall)
	}
	if mock.CallCount() != 4 {
		t.Errorf("expected 4 calls, got %d", mock.CallCount())
	}
}

func TestGenerate_FullFillResetsRetries(t *testing.T) {
	// Four fill calls fail across the run, more than MaxRetries in total,
	// but each full fill batch in between resets the counter so the run
	// still reaches the target.
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: batchReply(1, 20)},
		llm.MockResponse{Text: "garbage"},
		llm.MockResponse{Text: "garbage"},
		llm.MockResponse{Text: "garbage"},
		llm.MockResponse{Text: "garbage"},
		llm.MockResponse{Text: batchReply(21, 10)},
		llm.MockResponse{Text: "garbage"},
		llm.MockResponse{Text: "garbage"},
		llm.MockResponse{Text: batchReply(31, 10)},
		llm.MockResponse{Text: batchReply(41, 5)},
	)
	o := New(mock, testConfig(), nil)

	result, err := o.Generate(context.Background(), 45)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Questions) != 45 || result.Shortfall != 0 {
		t.Fatalf("expected full delivery, got %d with shortfall %d", len(result.Questions), result.Shortfall)
	}
}

func TestGenerate_NeverExceedsTarget(t *testing.T) {
	// The fill batch overproduces; the overshoot is trimmed.
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: batchReply(1, 2)},
		llm.MockResponse{Text: batchReply(3, 2)},
	)
	o := New(mock, testConfig(), nil)

	result, err := o.Generate(context.Background(), 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Questions) != 3 {
		t.Fatalf("expected exactly 3 questions, got %d", len(result.Questions))
	}
	if result.Questions[2].ID != 3 {
		t.Errorf("expected trailing id 3, got %d", result.Questions[2].ID)
	}
}

func TestGenerate_NonSequentialBatchRejected(t *testing.T) {
	// A reply with a gap in its ids fails the batch; the fill loop
	// retries from the same position.
	gapped := `{"questions": [
		{"id": 1, "question": "First?", "options": ["a", "b", "c", "d"], "answer": "A"},
		{"id": 3, "question": "Third?", "options": ["a", "b", "c", "d"], "answer": "B"}
	]}`
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: gapped},
		llm.MockResponse{Text: batchReply(1, 2)},
	)
	o := New(mock, testConfig(), nil)

	result, err := o.Generate(context.Background(), 2)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(result.Questions))
	}
	if result.Batches[0].Err == "" {
		t.Error("expected the gapped batch to record an error")
	}
}

func TestGenerate_AllCallsFail(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue, every call errors
	o := New(mock, testConfig(), nil)

	_, err := o.Generate(context.Background(), 10)
	if err == nil {
		t.Fatal("expected error when no questions are produced")
	}
}

func TestGenerate_InvalidTarget(t *testing.T) {
	o := New(llm.NewMockProvider(), testConfig(), nil)

	for _, target := range []int{0, -1} {
		if _, err := o.Generate(context.Background(), target); err == nil {
			t.Errorf("expected error for target %d", target)
		}
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := llm.NewMockProvider(
		llm.MockResponse{Text: batchReply(1, 20)},
		llm.MockResponse{Text: batchReply(21, 20)},
	)
	o := New(mock, testConfig(), nil)

	_, err := o.Generate(ctx, 40)
	if err == nil {
		t.Fatal("expected cancellation to propagate")
	}
}
