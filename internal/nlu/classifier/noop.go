// internal/nlu/classifier/noop.go
package classifier

import "context"

// Noop is the classifier used when no external service is configured. It
// always returns no opinion.
type Noop struct{}

func (Noop) Classify(_ context.Context, _ string, _ []string) Result {
	return NoOpinion
}
