package extract

import (
	"fmt"
	"strings"
)

// The prompt templates and the parser form one contract: every tolerance
// the parser has matches a promise a template makes. Change one, change
// the other.

const questionPrompt = `You are reading a scanned exam page. Extract every multiple-choice question you can see.

Respond with ONLY valid JSON, no markdown fencing, no commentary. Use exactly this shape:

{
  "questions": [
    {
      "questionNumber": 1,
      "question": "What is the capital of France?",
      "options": ["London", "Paris", "Berlin", "Madrid"],
      "answer": "B"
    }
  ],
  "type": "questions"
}

Rules:
- "questionNumber" is the number printed on the page. Omit it when the page shows none.
- "options" lists the choices in printed order. There are normally 4.
- "answer" is the letter of the correct choice if it is marked on the page; otherwise "A".
- If the image is blank or has no visible text, reply with the phrase "no visible content" instead of JSON.`

const answerKeyPrompt = `You are reading a scanned answer sheet. Extract the question numbers and their marked answer letters.

Respond with ONLY valid JSON, no markdown fencing, no commentary. Use exactly this shape:

{
  "questions": [
    {"questionNumber": 1, "answer": "C"},
    {"questionNumber": 2, "answer": "A"}
  ],
  "type": "answer_key"
}

Rules:
- Include every number you can read, in the order they appear.
- "answer" is a single letter A, B, C or D.
- If the sheet is blank or has no visible marks, reply with the phrase "no visible content" instead of JSON.`

// probePrompt is the fixed connectivity check instruction. The reply is
// considered healthy when it contains "connected" or "status".
const probePrompt = `Reply with exactly: {"status": "connected"}`

// BuildPrompt returns the instruction text for a single-image extraction
// task. Bulk generation uses BuildBulkPrompt because it is parameterized.
func BuildPrompt(task Task) string {
	switch task {
	case TaskAnswerKey:
		return answerKeyPrompt
	default:
		return questionPrompt
	}
}

// BuildProbePrompt returns the fixed connectivity-test instruction.
func BuildProbePrompt() string {
	return probePrompt
}

// BuildBulkPrompt returns the instruction text for generating count
// reading-comprehension questions numbered sequentially from startID.
func BuildBulkPrompt(count, startID int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate exactly %d English reading-comprehension questions, numbered sequentially starting at id %d.\n\n", count, startID)

	b.WriteString(`Each question has a short passage (3-5 sentences), one question about the passage, exactly 4 options, and the letter of the correct option.

Respond with ONLY valid JSON, no markdown fencing, no commentary. Use exactly this shape:

{
  "questions": [
    {
      "id": `)
	fmt.Fprintf(&b, "%d", startID)
	b.WriteString(`,
      "passage": "The small lighthouse had guided ships for a century. ...",
      "question": "Why was the lighthouse built?",
      "options": ["To attract tourists", "To guide ships", "To store supplies", "To watch for storms"],
      "answer": "B"
    }
  ]
}

Rules:
- Produce every id from `)
	fmt.Fprintf(&b, "%d to %d", startID, startID+count-1)
	b.WriteString(` with no gaps and no repeats.
- "options" has exactly 4 entries and exactly one is correct.
- "answer" is a single letter A, B, C or D.
- Vary topics and difficulty across questions.`)

	return b.String()
}
