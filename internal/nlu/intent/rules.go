// internal/nlu/intent/rules.go

// Package intent implements rule-based intent detection and the fixed
// intent → domain mapping.
package intent

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// RuleMatchConfidence is the fixed confidence assigned to any rule-based
// intent match, regardless of which rule fired.
const RuleMatchConfidence = 0.9

// Rule is one (label, pattern) entry. Rules are evaluated front-to-back and
// the first match wins, so list order is the tie-break.
type Rule struct {
	Label   string
	Pattern *regexp.Regexp
}

// RuleSet is the ordered list of intent rules, loaded once at process start
// and immutable afterwards.
type RuleSet struct {
	rules  []Rule
	labels []string
}

// Document is the wire shape of one intent's patterns, matching the seed
// files and the knowledge store rows.
type Document struct {
	Intent   string    `json:"intent"`
	Patterns []Pattern `json:"patterns"`
}

// Pattern is one regex with optional mode flags.
type Pattern struct {
	Regex string   `json:"regex"`
	Flags []string `json:"flags"`
}

// flagExpr maps a pattern flag name to the Go regexp mode letter.
var flagExpr = map[string]string{
	"IGNORECASE": "i",
	"MULTILINE":  "m",
	"DOTALL":     "s",
}

// FromDocuments compiles an ordered rule set. Documents without an intent
// label, patterns without a regex, and patterns that fail to compile are
// skipped rather than aborting the load; the skipped count is reported so
// callers can log it. Unknown flags are ignored.
func FromDocuments(docs []Document) (*RuleSet, int) {
	skipped := 0
	rs := &RuleSet{}
	seenLabels := make(map[string]bool)

	for _, doc := range docs {
		if doc.Intent == "" {
			skipped++
			continue
		}
		for _, p := range doc.Patterns {
			if p.Regex == "" {
				skipped++
				continue
			}
			re, err := regexp.Compile(applyFlags(p.Regex, p.Flags))
			if err != nil {
				skipped++
				continue
			}
			rs.rules = append(rs.rules, Rule{Label: doc.Intent, Pattern: re})
			if !seenLabels[doc.Intent] {
				seenLabels[doc.Intent] = true
				rs.labels = append(rs.labels, doc.Intent)
			}
		}
	}

	return rs, skipped
}

// LoadFile reads a JSON seed file containing a list of intent documents.
func LoadFile(path string) (*RuleSet, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read intent file %s: %w", path, err)
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, 0, fmt.Errorf("parse intent file %s: %w", path, err)
	}

	rs, skipped := FromDocuments(docs)
	return rs, skipped, nil
}

// Match scans the rules front-to-back and returns the label of the first
// rule whose pattern matches the normalized text.
func (rs *RuleSet) Match(cleanText string) (string, bool) {
	for _, r := range rs.rules {
		if r.Pattern.MatchString(cleanText) {
			return r.Label, true
		}
	}
	return "", false
}

// Labels returns the distinct intent labels in first-seen rule order. This is
// the allowed-label set handed to the fallback classifier.
func (rs *RuleSet) Labels() []string {
	return rs.labels
}

// Len reports the number of compiled rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

func applyFlags(expr string, flags []string) string {
	var letters strings.Builder
	for _, f := range flags {
		if l, ok := flagExpr[f]; ok {
			letters.WriteString(l)
		}
	}
	if letters.Len() == 0 {
		return expr
	}
	return "(?" + letters.String() + ")" + expr
}
