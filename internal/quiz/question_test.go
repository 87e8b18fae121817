package quiz

import "testing"

func TestValidLetter(t *testing.T) {
	cases := []struct {
		in    string
		want  Letter
		valid bool
	}{
		{"A", LetterA, true},
		{"d", LetterD, true},
		{"b", LetterB, true},
		{"E", "", false},
		{"", "", false},
		{"AB", "", false},
	}

	for _, tc := range cases {
		got, ok := ValidLetter(tc.in)
		if ok != tc.valid || got != tc.want {
			t.Errorf("ValidLetter(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.valid)
		}
	}
}

func TestCandidatePromote(t *testing.T) {
	c := Candidate{
		Number:  7,
		Text:    "What happened next?",
		Options: []string{"a", "b", "c", "d"},
		Answer:  LetterC,
		Passage: "A passage.",
	}

	q := c.Promote(42)
	if q.ID != 42 {
		t.Errorf("expected id 42, got %d", q.ID)
	}
	if q.Number != 7 || q.Text != c.Text || q.Answer != LetterC || q.Passage != c.Passage {
		t.Errorf("promotion lost fields: %+v", q)
	}
}

func TestQuestionValidate(t *testing.T) {
	valid := Question{ID: 1, Text: "Q?", Options: []string{"1", "2", "3", "4"}, Answer: LetterB}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	threeOptions := valid
	threeOptions.Options = []string{"1", "2", "3"}
	if err := threeOptions.Validate(); err == nil {
		t.Error("expected error for 3 options")
	}

	badAnswer := valid
	badAnswer.Answer = "Z"
	if err := badAnswer.Validate(); err == nil {
		t.Error("expected error for invalid answer")
	}
}
