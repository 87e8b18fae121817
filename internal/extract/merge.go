package extract

import "github.com/quizpix/quizpix/internal/quiz"

// MergeReport says how an answer-key merge went. A DefaultRatio of 1.0
// means no record matched the key at all, which almost always means the
// answer-sheet pass failed; callers should surface that, not swallow it.
type MergeReport struct {
	// Total is the number of question records merged.
	Total int

	// Defaulted counts records whose answer fell back to "A" because the
	// key had no entry for their number.
	Defaulted int
}

// DefaultRatio returns the fraction of records that used the default
// answer. 0 when there were no records.
func (r MergeReport) DefaultRatio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Defaulted) / float64(r.Total)
}

// MergeAnswerKey overwrites each question's answer with the key entry for
// its source number. Missing entries default to "A": that is deliberate
// fallback behavior, not an error, and the report exposes how often it
// happened. Questions are modified in place.
func MergeAnswerKey(questions []quiz.Question, key quiz.AnswerKey) MergeReport {
	report := MergeReport{Total: len(questions)}

	for i := range questions {
		if letter, ok := key[questions[i].Number]; ok {
			questions[i].Answer = letter
		} else {
			questions[i].Answer = quiz.LetterA
			report.Defaulted++
		}
	}

	return report
}
