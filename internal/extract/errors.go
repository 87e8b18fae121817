package extract

import "fmt"

// ContentAbsentError means the response text indicates the source image
// had no recognizable content. Terminal for that image: the caller should
// get a better image, not retry or fall back to speculative matching.
type ContentAbsentError struct {
	// Phrase is the absence marker found in the response.
	Phrase string
}

func (e *ContentAbsentError) Error() string {
	return fmt.Sprintf("no extractable content in image (response says %q)", e.Phrase)
}

// ParseError means no tier of the parse cascade produced valid records.
// Raw preserves the provider response for diagnostics.
type ParseError struct {
	Task   Task
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %s", e.Task, e.Reason)
}
