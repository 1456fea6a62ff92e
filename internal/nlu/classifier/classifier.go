// internal/nlu/classifier/classifier.go

// Package classifier defines the optional external intent classifier invoked
// when no intent rule matches. Implementations must never propagate errors:
// any transport, timeout, or parse failure degrades to a "no opinion" result.
package classifier

import "context"

// Result is a classification outcome. An empty Intent means no opinion.
type Result struct {
	Intent     string
	Confidence float64
}

// NoOpinion is the degraded result returned on any failure.
var NoOpinion = Result{}

// IntentClassifier classifies free text into one of the allowed intent
// labels. Implementations only ever return a label from allowed, or an empty
// intent with zero confidence.
type IntentClassifier interface {
	Classify(ctx context.Context, text string, allowed []string) Result
}
