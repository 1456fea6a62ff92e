// internal/models/query.go
package models

// ProcessorOutput is the structured result of running a raw question through
// the NLU pipeline. Empty Intent/Domain mean "unresolved".
type ProcessorOutput struct {
	RawText        string              `json:"rawText"`
	CleanText      string              `json:"cleanText"`
	Domain         string              `json:"domain,omitempty"`
	Intent         string              `json:"intent,omitempty"`
	Slots          SlotMap             `json:"slots"`
	RetrievalQuery string              `json:"retrievalQuery"`
	Confidence     ConfidenceBreakdown `json:"confidence"`
}

// SlotMap maps a slot type to the canonical values detected for it.
// Values within one slot type are unique and keep first-seen order. The
// "place" slot type is the exception: it holds raw free-text phrases captured
// by pattern, not gazetteer-normalized values.
type SlotMap map[string][]string

// SlotTypePlace holds pattern-captured free-text phrases.
const SlotTypePlace = "place"

// Add records a value under a slot type, skipping duplicates within that type.
func (s SlotMap) Add(slotType, value string) {
	for _, v := range s[slotType] {
		if v == value {
			return
		}
	}
	s[slotType] = append(s[slotType], value)
}

// AddPlace appends a raw captured phrase; place phrases may repeat.
func (s SlotMap) AddPlace(phrase string) {
	s[SlotTypePlace] = append(s[SlotTypePlace], phrase)
}

// ConfidenceBreakdown carries the per-stage confidence scores, each in [0, 1].
type ConfidenceBreakdown struct {
	Intent float64 `json:"intent"`
	Domain float64 `json:"domain"`
}
