package nlu

import (
	"strings"

	"campus-assistant/internal/nlu/intent"
)

// domainHints supplies a short retrieval hint per domain. Domains without an
// entry contribute nothing to the query.
var domainHints = map[string]string{
	intent.DomainLocation:   "location on campus",
	intent.DomainCourseInfo: "course information and entry requirements",
	intent.DomainEventInfo:  "date and time",
}

// buildRetrievalQuery assembles the query string fed to downstream retrieval:
// clean text, then slot terms joined with " | ", then the domain hint, with
// " ; " between segments. Segments without content are omitted.
func buildRetrievalQuery(clean, domain string, slotTerms []string) string {
	parts := []string{clean}

	if len(slotTerms) > 0 {
		parts = append(parts, strings.Join(slotTerms, " | "))
	}

	if hint, ok := domainHints[domain]; ok {
		parts = append(parts, hint)
	}

	return strings.Join(parts, " ; ")
}
