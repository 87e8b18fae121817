package extract

// Task selects which prompt template and which parsing and validation
// rules apply to a provider exchange.
type Task string

const (
	// TaskQuestions extracts full questions (text + options + answer)
	// from an exam-page image.
	TaskQuestions Task = "questions"

	// TaskAnswerKey extracts number→letter pairs from an answer-sheet
	// image.
	TaskAnswerKey Task = "answer_key"

	// TaskBulk generates reading-comprehension questions in bulk.
	// Validation is strict: the caller depends on exact counts.
	TaskBulk Task = "bulk_generation"
)

// Strict reports whether a record failing validation fails the whole
// response instead of being dropped.
func (t Task) Strict() bool {
	return t == TaskBulk
}
