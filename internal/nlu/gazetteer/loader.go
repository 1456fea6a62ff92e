// internal/nlu/gazetteer/loader.go
package gazetteer

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is the wire shape of one gazetteer slot type, matching the seed
// files and the knowledge store rows.
type Document struct {
	SlotType string `json:"slotType"`
	Items    []Item `json:"items"`
}

// Item is one canonical value with its aliases.
type Item struct {
	Canonical string   `json:"canonical"`
	Aliases   []string `json:"aliases"`
}

// FromDocuments assembles a Gazetteer, preserving document order. Documents
// without a slot type and items without a canonical value are skipped rather
// than aborting the load; skipped counts are reported so callers can log them.
func FromDocuments(docs []Document) (*Gazetteer, int) {
	skipped := 0
	slotTypes := make([]SlotType, 0, len(docs))

	for _, doc := range docs {
		if doc.SlotType == "" {
			skipped++
			continue
		}

		st := SlotType{Name: doc.SlotType}
		seen := make(map[string]int)
		for _, item := range doc.Items {
			if item.Canonical == "" {
				skipped++
				continue
			}
			if idx, ok := seen[item.Canonical]; ok {
				// Merge aliases for a repeated canonical value.
				st.Entries[idx].Aliases = mergeAliases(st.Entries[idx].Aliases, item.Aliases)
				continue
			}
			seen[item.Canonical] = len(st.Entries)
			st.Entries = append(st.Entries, Entry{
				Canonical: item.Canonical,
				Aliases:   append([]string(nil), item.Aliases...),
			})
		}
		slotTypes = append(slotTypes, st)
	}

	return New(slotTypes), skipped
}

// LoadFile reads a JSON seed file containing a list of gazetteer documents.
func LoadFile(path string) (*Gazetteer, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read gazetteer file %s: %w", path, err)
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, 0, fmt.Errorf("parse gazetteer file %s: %w", path, err)
	}

	gaz, skipped := FromDocuments(docs)
	return gaz, skipped, nil
}

func mergeAliases(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[a] = true
	}
	for _, a := range extra {
		if !seen[a] {
			existing = append(existing, a)
			seen[a] = true
		}
	}
	return existing
}
