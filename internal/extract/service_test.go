package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/quizpix/quizpix/internal/llm"
	"github.com/quizpix/quizpix/internal/quiz"
)

func TestService_ExtractQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: questionsJSON()})
	svc := New(mock, DefaultConfig())

	result, err := svc.ExtractQuestions(context.Background(), []byte{0x89, 0x50}, "image/png")
	if err != nil {
		t.Fatalf("ExtractQuestions failed: %v", err)
	}
	if len(result.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(result.Questions))
	}

	// Promoted records get fresh sequential ids regardless of the
	// printed numbers.
	if result.Questions[0].ID != 1 || result.Questions[1].ID != 2 {
		t.Errorf("expected sequential ids, got %d and %d", result.Questions[0].ID, result.Questions[1].ID)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 provider call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if !req.HasImage() {
		t.Error("expected the request to carry the image")
	}
	if req.ImageMIME != "image/png" {
		t.Errorf("unexpected MIME: %q", req.ImageMIME)
	}
	if req.Temperature != 0 {
		t.Errorf("extraction should run at temperature 0, got %f", req.Temperature)
	}
}

func TestService_ExtractQuestionsBlankPage(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "no visible content"})
	svc := New(mock, DefaultConfig())

	_, err := svc.ExtractQuestions(context.Background(), []byte{1}, "image/png")
	var absent *ContentAbsentError
	if !errors.As(err, &absent) {
		t.Fatalf("expected ContentAbsentError, got %v", err)
	}
}

func TestService_ExtractQuestionsProviderError(t *testing.T) {
	wantErr := &llm.ProviderError{Provider: "mock", StatusCode: 500}
	mock := llm.NewMockProvider(llm.MockResponse{Err: wantErr})
	svc := New(mock, DefaultConfig())

	_, err := svc.ExtractQuestions(context.Background(), []byte{1}, "image/png")
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected wrapped ProviderError, got %v", err)
	}
}

func TestService_ExtractAnswerKey(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: `{"questions": [{"questionNumber": 1, "answer": "C"}, {"questionNumber": 2, "answer": "A"}], "type": "answer_key"}`,
	})
	svc := New(mock, DefaultConfig())

	key, _, err := svc.ExtractAnswerKey(context.Background(), []byte{1}, "image/jpeg")
	if err != nil {
		t.Fatalf("ExtractAnswerKey failed: %v", err)
	}
	if len(key) != 2 || key[1] != quiz.LetterC || key[2] != quiz.LetterA {
		t.Errorf("unexpected key: %v", key)
	}
}

func TestService_Probe(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		healthy bool
	}{
		{"exact", `{"status": "connected"}`, true},
		{"prose", "I am CONNECTED and ready.", true},
		{"status only", `{"status": "ok"}`, true},
		{"unrelated", "Hello! How can I help you today?", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Text: tc.reply})
			svc := New(mock, DefaultConfig())

			err := svc.Probe(context.Background())
			if tc.healthy && err != nil {
				t.Errorf("expected healthy, got %v", err)
			}
			if !tc.healthy && err == nil {
				t.Error("expected unhealthy probe to fail")
			}

			if mock.Calls[0].HasImage() {
				t.Error("probe must be text-only")
			}
		})
	}
}
