package quiz

import "fmt"

// Letter is a multiple-choice answer letter.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// Letters holds the valid answer letters in option order.
var Letters = []Letter{LetterA, LetterB, LetterC, LetterD}

// OptionCount is the number of choices every question carries.
const OptionCount = 4

// ValidLetter reports whether s (after upper-casing) is one of A-D.
// The second return is the normalized letter.
func ValidLetter(s string) (Letter, bool) {
	switch s {
	case "A", "a":
		return LetterA, true
	case "B", "b":
		return LetterB, true
	case "C", "c":
		return LetterC, true
	case "D", "d":
		return LetterD, true
	}
	return "", false
}

// Candidate is a record produced by the response parser before it has
// been promoted to a Question with a stable id.
type Candidate struct {
	// Number is the question number as stated in the source material.
	// 0 means the source did not state one.
	Number int

	Text    string
	Options []string
	Answer  Letter

	// Passage is the reading passage for comprehension questions.
	// Empty for plain extraction.
	Passage string
}

// Question is a Candidate promoted with a caller-assigned id.
type Question struct {
	ID      int      `json:"id"`
	Number  int      `json:"questionNumber,omitempty"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Answer  Letter   `json:"answer"`
	Passage string   `json:"passage,omitempty"`
}

// Promote assigns id to a candidate, turning it into a Question.
func (c Candidate) Promote(id int) Question {
	return Question{
		ID:      id,
		Number:  c.Number,
		Text:    c.Text,
		Options: c.Options,
		Answer:  c.Answer,
		Passage: c.Passage,
	}
}

// Validate checks the Question invariants: exactly 4 options and an
// answer letter in A-D.
func (q Question) Validate() error {
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question %d: expected %d options, got %d", q.ID, OptionCount, len(q.Options))
	}
	if _, ok := ValidLetter(string(q.Answer)); !ok {
		return fmt.Errorf("question %d: invalid answer %q", q.ID, q.Answer)
	}
	return nil
}

// AnswerKey maps a question number to its correct-answer letter.
// Duplicate numbers within one extraction are last-write-wins.
type AnswerKey map[int]Letter
