// internal/models/answer.go
package models

// Answer states emitted in the debug map by the synthesizer.
const (
	AnswerStateDetail       = "detail_answer"
	AnswerStateShortlist    = "shortlist"
	AnswerStateUndetermined = "undetermined"
	AnswerStateUnsupported  = "unsupported"
	AnswerStateNoData       = "no_data"
)

// AnswerResult is the final synthesized answer for one request.
type AnswerResult struct {
	Answer     string                 `json:"answer"`
	Sources    []Source               `json:"sources"`
	Confidence float64                `json:"confidence"`
	Debug      map[string]interface{} `json:"debug,omitempty"`
}

// Source is a citation attached to an answer.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
