package extract

import (
	"strings"
	"testing"
)

func TestBuildBulkPrompt(t *testing.T) {
	prompt := BuildBulkPrompt(20, 41)

	for _, want := range []string{
		"exactly 20",
		"starting at id 41",
		"41 to 60",
		"no gaps and no repeats",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("bulk prompt missing %q", want)
		}
	}
}

func TestBuildBulkPrompt_SingleQuestion(t *testing.T) {
	prompt := BuildBulkPrompt(1, 7)
	if !strings.Contains(prompt, "7 to 7") {
		t.Errorf("expected a single-id range, got:\n%s", prompt)
	}
}

func TestBuildPrompt_TaskShapes(t *testing.T) {
	q := BuildPrompt(TaskQuestions)
	if !strings.Contains(q, "questionNumber") || !strings.Contains(q, "options") {
		t.Error("question prompt missing reply shape")
	}

	a := BuildPrompt(TaskAnswerKey)
	if !strings.Contains(a, "answer_key") {
		t.Error("answer key prompt missing type marker")
	}
	if strings.Contains(a, "options") {
		t.Error("answer key prompt should not ask for options")
	}
}

func TestBuildPrompt_ExampleParses(t *testing.T) {
	// The JSON example embedded in each template must itself survive the
	// parser, otherwise a provider that echoes the shape verbatim fails.
	raw := BuildBulkPrompt(1, 1)
	span, ok := balancedSpan(raw[strings.Index(raw, "{"):])
	if !ok {
		t.Fatal("bulk prompt example is not balanced JSON")
	}
	if _, ok := decodeWire(span); !ok {
		t.Errorf("bulk prompt example does not decode: %s", span)
	}
}

func TestBuildProbePrompt(t *testing.T) {
	if !strings.Contains(BuildProbePrompt(), `{"status": "connected"}`) {
		t.Error("probe prompt missing expected reply")
	}
}
