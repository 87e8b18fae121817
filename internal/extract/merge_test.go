package extract

import (
	"testing"

	"github.com/quizpix/quizpix/internal/quiz"
)

func sampleQuestions() []quiz.Question {
	return []quiz.Question{
		{ID: 1, Number: 1, Text: "First?", Options: []string{"a", "b", "c", "d"}, Answer: quiz.LetterA},
		{ID: 2, Number: 2, Text: "Second?", Options: []string{"a", "b", "c", "d"}, Answer: quiz.LetterA},
		{ID: 3, Number: 3, Text: "Third?", Options: []string{"a", "b", "c", "d"}, Answer: quiz.LetterA},
	}
}

func TestMergeAnswerKey_Overwrites(t *testing.T) {
	questions := sampleQuestions()
	key := quiz.AnswerKey{1: quiz.LetterC, 2: quiz.LetterD, 3: quiz.LetterB}

	report := MergeAnswerKey(questions, key)

	if report.Total != 3 || report.Defaulted != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if questions[0].Answer != quiz.LetterC || questions[1].Answer != quiz.LetterD || questions[2].Answer != quiz.LetterB {
		t.Errorf("answers not overwritten: %+v", questions)
	}
}

func TestMergeAnswerKey_MissingEntriesDefault(t *testing.T) {
	questions := sampleQuestions()
	questions[1].Answer = quiz.LetterD
	key := quiz.AnswerKey{1: quiz.LetterB}

	report := MergeAnswerKey(questions, key)

	if report.Defaulted != 2 {
		t.Fatalf("expected 2 defaulted, got %d", report.Defaulted)
	}
	// A question absent from the key falls back to "A" even when it
	// previously held another letter.
	if questions[1].Answer != quiz.LetterA {
		t.Errorf("expected missing entry to default to A, got %s", questions[1].Answer)
	}
	if questions[0].Answer != quiz.LetterB {
		t.Errorf("expected keyed entry to apply, got %s", questions[0].Answer)
	}
}

func TestMergeAnswerKey_EmptyKey(t *testing.T) {
	questions := sampleQuestions()

	report := MergeAnswerKey(questions, quiz.AnswerKey{})

	if report.Total != 3 || report.Defaulted != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if ratio := report.DefaultRatio(); ratio != 1.0 {
		t.Errorf("expected default ratio 1.0, got %f", ratio)
	}
}

func TestMergeAnswerKey_NoQuestions(t *testing.T) {
	report := MergeAnswerKey(nil, quiz.AnswerKey{1: quiz.LetterB})
	if report.Total != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if ratio := report.DefaultRatio(); ratio != 0 {
		t.Errorf("expected zero ratio for no questions, got %f", ratio)
	}
}
