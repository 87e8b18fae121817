package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// wireQuestion is one entry of the documented reply shape. Extraction
// replies use questionNumber, bulk-generation replies use id and passage;
// answer-sheet replies carry only questionNumber and answer.
type wireQuestion struct {
	ID             int      `json:"id"`
	QuestionNumber int      `json:"questionNumber"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	Answer         string   `json:"answer"`
	Passage        string   `json:"passage"`
}

// wireEnvelope is the documented reply object.
type wireEnvelope struct {
	Questions []wireQuestion `json:"questions"`
	Type      string         `json:"type"`
}

// strategy is one tier of the parse cascade: a pure function from response
// text to records. Tiers run in order; the first success wins.
type strategy struct {
	name  string
	apply func(raw string) ([]wireQuestion, bool)
}

// strategiesFor returns the ordered cascade for a task. The regex tier is
// appended only for question extraction: it trades precision for
// availability, which bulk generation and answer sheets cannot afford.
func strategiesFor(task Task) []strategy {
	tiers := []strategy{
		{name: "direct", apply: parseDirect},
		{name: "fence_strip", apply: parseFenceStripped},
		{name: "comma_repair", apply: parseCommaRepaired},
		{name: "boundary", apply: parseBoundary},
	}
	if task == TaskQuestions {
		tiers = append(tiers, strategy{name: "regex", apply: parseRegex})
	}
	return tiers
}

// parseDirect locates the first balanced {...} or [...] span and decodes
// it strictly.
func parseDirect(raw string) ([]wireQuestion, bool) {
	span, ok := balancedSpan(raw)
	if !ok {
		return nil, false
	}
	return decodeWire(span)
}

// parseFenceStripped removes markdown code fences, then retries the
// direct decode.
func parseFenceStripped(raw string) ([]wireQuestion, bool) {
	return parseDirect(stripFences(raw))
}

// parseCommaRepaired removes trailing commas before closing braces and
// brackets, then retries the decode.
func parseCommaRepaired(raw string) ([]wireQuestion, bool) {
	return parseDirect(stripTrailingCommas(stripFences(raw)))
}

// parseBoundary takes the substring between the first "{" and the last
// "}" of the cleaned text, reapplies the comma repair and decodes. This
// recovers replies whose JSON is surrounded by prose on both sides.
func parseBoundary(raw string) ([]wireQuestion, bool) {
	cleaned := stripFences(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, false
	}
	return decodeWire(stripTrailingCommas(cleaned[start : end+1]))
}

var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^\s*Question\s+(\d+)\s*[:.]\s*(.+)$`),
	regexp.MustCompile(`(?im)^\s*(\d+)\.\s+(.+)$`),
	regexp.MustCompile(`(?im)^\s*Q(\d+)\s*[:.]\s*(.+)$`),
}

// placeholderOptions fills in choices the regex tier cannot recover.
var placeholderOptions = []string{"Option A", "Option B", "Option C", "Option D"}

// parseRegex scans for numbered question lines when the provider ignored
// the JSON instruction. Patterns are tried in order and the first one
// that matches anything wins, so a line is never counted twice.
func parseRegex(raw string) ([]wireQuestion, bool) {
	for _, pat := range questionPatterns {
		matches := pat.FindAllStringSubmatch(raw, -1)
		if len(matches) == 0 {
			continue
		}
		out := make([]wireQuestion, 0, len(matches))
		for _, m := range matches {
			num, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			text := strings.TrimSpace(m[2])
			if text == "" {
				continue
			}
			out = append(out, wireQuestion{
				QuestionNumber: num,
				Question:       text,
				Options:        append([]string(nil), placeholderOptions...),
				Answer:         "A",
			})
		}
		if len(out) > 0 {
			return out, true
		}
	}
	return nil, false
}

// decodeWire decodes a JSON span as the documented envelope, accepting a
// bare questions array as well.
func decodeWire(span string) ([]wireQuestion, bool) {
	var env wireEnvelope
	if err := json.Unmarshal([]byte(span), &env); err == nil && len(env.Questions) > 0 {
		return env.Questions, true
	}

	var arr []wireQuestion
	if err := json.Unmarshal([]byte(span), &arr); err == nil && len(arr) > 0 {
		return arr, true
	}

	return nil, false
}

// balancedSpan returns the first balanced {...} or [...] span in text.
// Braces inside JSON strings are ignored.
func balancedSpan(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return "", false
	}

	open := text[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// stripFences removes leading/trailing markdown code-fence markers,
// including a language tag on the opening fence.
func stripFences(text string) string {
	s := strings.TrimSpace(text)

	if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+3:]
		// Skip the language tag line, e.g. "json".
		if nl := strings.Index(s, "\n"); nl != -1 && nl < 20 && !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		}
		if end := strings.LastIndex(s, "```"); end != -1 {
			s = s[:end]
		}
	}

	return strings.TrimSpace(s)
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// stripTrailingCommas removes commas sitting immediately before a closing
// brace or bracket, the most common model JSON slip.
func stripTrailingCommas(text string) string {
	return trailingCommaRe.ReplaceAllString(text, "$1")
}
