package answer

import "strings"

// tagGroup maps a set of trigger keywords to one hall tag. Groups are
// evaluated in fixed order so the derived tag list is deterministic.
type tagGroup struct {
	tag      string
	keywords []string
}

var tagGroups = []tagGroup{
	{tag: "budget", keywords: []string{"budget", "cheap", "cheapest", "affordable", "low cost"}},
	{tag: "close_to_campus", keywords: []string{"close", "near", "nearby", "walking", "on campus"}},
	{tag: "social", keywords: []string{"social", "sociable", "party", "friends", "meet people"}},
	{tag: "undergraduate", keywords: []string{"undergraduate", "undergrad", "first year", "fresher"}},
}

// wantedTags derives the tags a question is implicitly asking for from the
// keywords present in the combined text.
func wantedTags(combined string) []string {
	var tags []string
	for _, g := range tagGroups {
		for _, kw := range g.keywords {
			if strings.Contains(combined, kw) {
				tags = append(tags, g.tag)
				break
			}
		}
	}
	return tags
}

// tagScore counts how many wanted tags appear in the hall's tag or
// lifestyle-tag sets.
func tagScore(wanted, tags, lifestyleTags []string) int {
	present := make(map[string]bool, len(tags)+len(lifestyleTags))
	for _, t := range tags {
		present[t] = true
	}
	for _, t := range lifestyleTags {
		present[t] = true
	}

	score := 0
	for _, w := range wanted {
		if present[w] {
			score++
		}
	}
	return score
}
