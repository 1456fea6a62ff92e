// internal/nlu/gazetteer/gazetteer.go

// Package gazetteer holds the static slot-type → canonical value → aliases
// lookup used for substring-based entity detection. A Gazetteer is built once
// at process start and is immutable afterwards, so it is safe to share across
// concurrent request handlers.
package gazetteer

import "strings"

// Entry is one canonical value and its alias spellings within a slot type.
type Entry struct {
	Canonical string
	Aliases   []string
}

// SlotType is an ordered group of entries for one slot type.
type SlotType struct {
	Name    string
	Entries []Entry
}

// Gazetteer is an ordered collection of slot types. Iteration order is the
// load order, which fixes the order slot types are discovered in during
// extraction.
type Gazetteer struct {
	slotTypes []SlotType
}

// New builds a Gazetteer from already-validated slot types.
func New(slotTypes []SlotType) *Gazetteer {
	return &Gazetteer{slotTypes: slotTypes}
}

// SlotTypes returns the slot types in load order.
func (g *Gazetteer) SlotTypes() []SlotType {
	return g.slotTypes
}

// Len reports the number of slot types.
func (g *Gazetteer) Len() int {
	return len(g.slotTypes)
}

// Matches reports whether the entry's canonical value or any of its aliases
// occurs as a substring of the normalized text.
func (e Entry) Matches(cleanText string) bool {
	if e.Canonical != "" && strings.Contains(cleanText, e.Canonical) {
		return true
	}
	for _, alias := range e.Aliases {
		if alias != "" && strings.Contains(cleanText, alias) {
			return true
		}
	}
	return false
}
