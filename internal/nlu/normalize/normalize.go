// internal/nlu/normalize/normalize.go
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean canonicalizes raw question text so downstream substring and regex
// matching is stable: Unicode NFKC (compatibility decomposition followed by
// recomposition), then trim, then lowercase. Idempotent; empty input yields
// the empty string.
func Clean(text string) string {
	text = norm.NFKC.String(text)
	text = strings.TrimSpace(text)
	return strings.ToLower(text)
}
