package nlu

import (
	"regexp"
	"strings"

	"campus-assistant/internal/models"
)

// placePatterns capture the free-text tail of direction-style questions.
// Captured phrases go into the "place" slot un-normalized.
var placePatterns = []*regexp.Regexp{
	regexp.MustCompile(`how\s+do\s+i\s+get\s+to\s+(.*)`),
	regexp.MustCompile(`where\s+is\s+(.*)`),
}

// extractSlots runs the gazetteer over the clean text. Discovery order follows
// gazetteer iteration order, not text position; the returned terms list keeps
// that order for the retrieval query.
func (p *Processor) extractSlots(clean string) (models.SlotMap, []string) {
	slots := models.SlotMap{}
	var terms []string

	for _, st := range p.gaz.SlotTypes() {
		for _, entry := range st.Entries {
			if !entry.Matches(clean) {
				continue
			}
			before := len(slots[st.Name])
			slots.Add(st.Name, entry.Canonical)
			if len(slots[st.Name]) > before {
				terms = append(terms, entry.Canonical)
			}
		}
	}

	for _, phrase := range placePhrases(clean) {
		slots.AddPlace(phrase)
		terms = append(terms, phrase)
	}

	return slots, terms
}

func placePhrases(clean string) []string {
	var phrases []string
	for _, p := range placePatterns {
		m := p.FindStringSubmatch(clean)
		if m == nil {
			continue
		}
		phrase := strings.TrimSpace(strings.Trim(m[1], " ?.!"))
		if phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}
