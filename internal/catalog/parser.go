package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/quizpix/quizpix/internal/quiz"
)

// Line patterns for printed exam catalogs: numbered question lines,
// lettered option lines, and a correctness marker ("X" or "*") either
// prefixing the option or standing on its own line before it.
var (
	questionLineRe     = regexp.MustCompile(`^\s*(\d+)\.\s+(.+)$`)
	optionLineRe       = regexp.MustCompile(`^\s*([a-dA-D])\)\s*(.*)$`)
	markedOptionLineRe = regexp.MustCompile(`^\s*[X*]\s+([a-dA-D])\)\s*(.*)$`)
	markerOnlyRe       = regexp.MustCompile(`^\s*[X*]\s*$`)
)

type rawQuestion struct {
	number  int
	text    string
	options map[string]string // letter → text
	correct string            // letter, "" when unmarked
}

// ParseText scans catalog text for numbered questions with lettered
// options. Questions with fewer than 4 options are dropped; a 5th or
// later option is ignored. Unmarked questions default to answer "A".
func ParseText(text string) ([]quiz.Question, error) {
	lines := strings.Split(text, "\n")

	var questions []*rawQuestion
	var current *rawQuestion
	nextOptionIsCorrect := false

	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		if m := markedOptionLineRe.FindStringSubmatch(trimmed); m != nil && current != nil {
			letter := strings.ToUpper(m[1])
			current.options[letter] = strings.TrimSpace(m[2])
			current.correct = letter
			nextOptionIsCorrect = false
			continue
		}

		if markerOnlyRe.MatchString(trimmed) {
			nextOptionIsCorrect = true
			continue
		}

		if m := optionLineRe.FindStringSubmatch(trimmed); m != nil && current != nil {
			letter := strings.ToUpper(m[1])
			current.options[letter] = strings.TrimSpace(m[2])
			if nextOptionIsCorrect {
				current.correct = letter
				nextOptionIsCorrect = false
			}
			continue
		}

		if m := questionLineRe.FindStringSubmatch(trimmed); m != nil {
			num, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			current = &rawQuestion{
				number:  num,
				text:    strings.TrimSpace(m[2]),
				options: make(map[string]string),
			}
			questions = append(questions, current)
			nextOptionIsCorrect = false
			continue
		}

		// Continuation of the question text before any option appeared.
		if current != nil && len(current.options) == 0 {
			current.text += " " + strings.TrimSpace(trimmed)
		}
	}

	out := make([]quiz.Question, 0, len(questions))
	for _, raw := range questions {
		q, ok := raw.build(len(out) + 1)
		if ok {
			out = append(out, q)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no questions found in catalog text")
	}
	return out, nil
}

func (r *rawQuestion) build(id int) (quiz.Question, bool) {
	if len(r.options) < quiz.OptionCount {
		return quiz.Question{}, false
	}

	letters := make([]string, 0, len(r.options))
	for letter := range r.options {
		letters = append(letters, letter)
	}
	sort.Strings(letters)
	letters = letters[:quiz.OptionCount]

	options := make([]string, quiz.OptionCount)
	for i, letter := range letters {
		options[i] = r.options[letter]
	}

	answer := quiz.LetterA
	if l, ok := quiz.ValidLetter(r.correct); ok {
		answer = l
	}

	return quiz.Question{
		ID:      id,
		Number:  r.number,
		Text:    r.text,
		Options: options,
		Answer:  answer,
	}, true
}

// ImportPDF extracts text from the PDF at path and parses it.
func ImportPDF(path string) ([]quiz.Question, error) {
	text, err := ExtractText(path)
	if err != nil {
		return nil, err
	}
	return ParseText(text)
}
