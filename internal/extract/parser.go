package extract

import (
	"fmt"
	"strings"

	"github.com/quizpix/quizpix/internal/quiz"
)

// absencePhrases classify a response as content-absent. Checked before
// any JSON attempt; a match is terminal and never falls through to the
// regex tier, because a "nothing here" verdict must not be replaced by a
// speculative match.
var absencePhrases = []string{
	"blank",
	"no content",
	"no visible",
	"white image",
	"empty page",
}

// Diagnostics describes how a response was parsed. Returned to the
// caller instead of being printed, so tests can assert on it.
type Diagnostics struct {
	// Strategy is the name of the cascade tier that produced the records.
	Strategy string

	// Records is how many records the winning tier yielded.
	Records int

	// DefaultedAnswers counts records whose answer fell back to "A"
	// because the reply had none or an invalid one.
	DefaultedAnswers int

	// Dropped counts records discarded by lenient validation.
	Dropped int
}

// Parse turns a raw provider response into candidate records for the
// given task. It returns *ContentAbsentError when the response classifies
// the image as empty, and *ParseError when no cascade tier produces
// records that survive validation.
func Parse(raw string, task Task) ([]quiz.Candidate, Diagnostics, error) {
	if phrase, absent := contentAbsent(raw); absent {
		return nil, Diagnostics{}, &ContentAbsentError{Phrase: phrase}
	}

	for _, tier := range strategiesFor(task) {
		records, ok := tier.apply(raw)
		if !ok {
			continue
		}

		if task.Strict() {
			if err := validateBulkEnvelope(records); err != nil {
				return nil, Diagnostics{}, &ParseError{
					Task:   task,
					Reason: fmt.Sprintf("schema validation failed: %v", err),
					Raw:    raw,
				}
			}
		}

		candidates, diag, err := promote(records, task)
		if err != nil {
			return nil, Diagnostics{}, err
		}
		if len(candidates) == 0 {
			// Nothing survived lenient validation; let later tiers try.
			continue
		}

		diag.Strategy = tier.name
		diag.Records = len(candidates)
		return candidates, diag, nil
	}

	return nil, Diagnostics{}, &ParseError{
		Task:   task,
		Reason: "no parse strategy produced valid records",
		Raw:    raw,
	}
}

// contentAbsent reports whether the response text contains an absence
// phrase, case-insensitively.
func contentAbsent(raw string) (string, bool) {
	lowered := strings.ToLower(raw)
	for _, phrase := range absencePhrases {
		if strings.Contains(lowered, phrase) {
			return phrase, true
		}
	}
	return "", false
}

// promote converts wire records into candidates, applying the per-task
// validation rules. Strict tasks fail on the first bad record; lenient
// tasks drop bad records and default missing answers to "A".
func promote(records []wireQuestion, task Task) ([]quiz.Candidate, Diagnostics, error) {
	var diag Diagnostics
	out := make([]quiz.Candidate, 0, len(records))

	for i, r := range records {
		c := quiz.Candidate{
			Number:  r.QuestionNumber,
			Text:    strings.TrimSpace(r.Question),
			Options: r.Options,
			Passage: strings.TrimSpace(r.Passage),
		}
		// Bulk replies number records with "id".
		if c.Number == 0 {
			c.Number = r.ID
		}

		letter, validAnswer := quiz.ValidLetter(strings.TrimSpace(r.Answer))

		switch task {
		case TaskAnswerKey:
			// Entries carry only a number and a letter.
			if c.Number == 0 || !validAnswer {
				diag.Dropped++
				continue
			}
			c.Answer = letter
			c.Options = nil

		case TaskBulk:
			if len(r.Options) != quiz.OptionCount {
				return nil, Diagnostics{}, &ParseError{
					Task:   task,
					Reason: fmt.Sprintf("record %d: expected %d options, got %d", i+1, quiz.OptionCount, len(r.Options)),
				}
			}
			if !validAnswer {
				return nil, Diagnostics{}, &ParseError{
					Task:   task,
					Reason: fmt.Sprintf("record %d: invalid answer %q", i+1, r.Answer),
				}
			}
			if c.Text == "" {
				return nil, Diagnostics{}, &ParseError{
					Task:   task,
					Reason: fmt.Sprintf("record %d: empty question text", i+1),
				}
			}
			c.Answer = letter

		default: // TaskQuestions
			if c.Text == "" || len(c.Options) == 0 {
				diag.Dropped++
				continue
			}
			if !validAnswer {
				letter = quiz.LetterA
				diag.DefaultedAnswers++
			}
			c.Answer = letter
		}

		out = append(out, c)
	}

	return out, diag, nil
}

// ParseAnswerKey runs the answer-sheet parse and folds the candidates
// into an AnswerKey map. Duplicate numbers are last-write-wins.
func ParseAnswerKey(raw string) (quiz.AnswerKey, Diagnostics, error) {
	candidates, diag, err := Parse(raw, TaskAnswerKey)
	if err != nil {
		return nil, diag, err
	}

	key := make(quiz.AnswerKey, len(candidates))
	for _, c := range candidates {
		key[c.Number] = c.Answer
	}
	return key, diag, nil
}
