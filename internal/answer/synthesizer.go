// Package answer turns a processed question plus the current hall snapshot
// into a user-facing answer. Synthesis is a pure function over its inputs:
// it never writes, and malformed records degrade to placeholders instead of
// failing.
package answer

import (
	"math"
	"sort"
	"strings"

	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/models"
	"campus-assistant/internal/nlu/intent"
)

const (
	// Confidence blend weights and per-state adjustments.
	intentWeight     = 0.6
	domainWeight     = 0.4
	resolvedDomain   = 0.8
	detailBonus      = 0.25
	shortlistBonus   = 0.15
	confidenceFloor  = 0.1
	shortlistMaxSize = 3

	// minTokenLen is the shortest combined-text token considered for
	// name matching; shorter tokens are too noisy.
	minTokenLen = 4
)

// fallbackKeywords trigger accommodation domain inference when the resolver
// produced no domain. Mirrors the accommodation intent rule vocabulary.
var fallbackKeywords = []string{"accommodation", "hall", "halls", "dorm", "dorms", "rent", "deposit", "tenancy"}

type Synthesizer struct {
	logger logger.Logger
}

func NewSynthesizer(log logger.Logger) *Synthesizer {
	return &Synthesizer{logger: log}
}

// Synthesize runs the answer state machine for one request.
func (s *Synthesizer) Synthesize(out models.ProcessorOutput, halls []models.Hall) models.AnswerResult {
	domainConf := out.Confidence.Domain

	// An empty snapshot ends in NoData no matter what was resolved.
	if len(halls) == 0 {
		base := blend(out.Confidence.Intent, domainConf)
		return s.finish(models.AnswerResult{
			Answer:     "I don't have any accommodation records loaded yet, so there's nothing I can share. Please try again later.",
			Confidence: math.Max(confidenceFloor, base),
			Debug: map[string]interface{}{
				"strategy": models.AnswerStateNoData,
			},
		}, models.AnswerStateNoData)
	}

	domain := out.Domain
	inferred := false
	if domain == "" {
		if d := inferDomain(out.CleanText, halls); d != "" {
			domain = d
			domainConf = resolvedDomain
			inferred = true
		}
	}

	base := blend(out.Confidence.Intent, domainConf)

	if domain == "" {
		return s.finish(models.AnswerResult{
			Answer:     "I'm not sure what you're asking about. Could you rephrase, or mention a topic such as accommodation?",
			Confidence: math.Max(confidenceFloor, base),
			Debug: map[string]interface{}{
				"strategy": models.AnswerStateUndetermined,
				"reason":   "domain_none_after_fallback",
			},
		}, models.AnswerStateUndetermined)
	}

	if domain != intent.DomainAccommodation {
		return s.finish(models.AnswerResult{
			Answer:     "Right now I can only answer accommodation questions. Support for other topics is on the way.",
			Confidence: math.Max(confidenceFloor, base),
			Debug: map[string]interface{}{
				"strategy": models.AnswerStateUnsupported,
				"reason":   "domain_not_supported_yet",
				"domain":   domain,
			},
		}, models.AnswerStateUnsupported)
	}

	combined := combinedText(out)

	if hall, ok := matchHall(combined, halls); ok {
		return s.finish(models.AnswerResult{
			Answer:     formatHallDetail(hall),
			Sources:    []models.Source{sourceFor(hall)},
			Confidence: math.Min(1.0, base+detailBonus),
			Debug: map[string]interface{}{
				"strategy":       models.AnswerStateDetail,
				"matchedHall":    hall.Name,
				"domainInferred": inferred,
			},
		}, models.AnswerStateDetail)
	}

	wanted := wantedTags(combined)
	shortlist := rankHalls(halls, wanted)

	sources := make([]models.Source, 0, len(shortlist))
	for _, h := range shortlist {
		sources = append(sources, sourceFor(h))
	}

	return s.finish(models.AnswerResult{
		Answer:     formatShortlist(shortlist),
		Sources:    sources,
		Confidence: math.Min(1.0, base+shortlistBonus),
		Debug: map[string]interface{}{
			"strategy":       models.AnswerStateShortlist,
			"wantedTags":     wanted,
			"domainInferred": inferred,
		},
	}, models.AnswerStateShortlist)
}

func (s *Synthesizer) finish(res models.AnswerResult, state string) models.AnswerResult {
	s.logger.Debug("answer synthesized", map[string]interface{}{
		"state":      state,
		"confidence": res.Confidence,
		"sources":    len(res.Sources),
	})
	return res
}

func blend(intentConf, domainConf float64) float64 {
	return intentWeight*intentConf + domainWeight*domainConf
}

// inferDomain is the last-chance domain guess: accommodation keywords in the
// text, or any known hall name appearing as a substring.
func inferDomain(cleanText string, halls []models.Hall) string {
	for _, kw := range fallbackKeywords {
		if strings.Contains(cleanText, kw) {
			return intent.DomainAccommodation
		}
	}

	for _, h := range halls {
		name := strings.ToLower(h.Name)
		if name != "" && strings.Contains(cleanText, name) {
			return intent.DomainAccommodation
		}
	}

	return ""
}

// combinedText merges everything known about the request into one haystack
// for record matching.
func combinedText(out models.ProcessorOutput) string {
	parts := []string{out.CleanText}
	for _, values := range out.Slots {
		parts = append(parts, values...)
	}
	parts = append(parts, out.RetrievalQuery)
	return strings.ToLower(strings.Join(parts, " "))
}

// matchHall returns the first hall, in collection order, whose name matches
// the combined text by substring (either direction) or by overlap of tokens
// of length >= minTokenLen.
func matchHall(combined string, halls []models.Hall) (models.Hall, bool) {
	combined = strings.TrimSpace(combined)
	if combined == "" {
		return models.Hall{}, false
	}

	combinedTokens := tokenize(combined)

	for _, h := range halls {
		name := strings.ToLower(h.Name)
		if name == "" {
			continue
		}

		if strings.Contains(combined, name) || strings.Contains(name, combined) {
			return h, true
		}

		nameTokens := tokenize(name)
		for tok := range combinedTokens {
			if len(tok) < minTokenLen {
				continue
			}
			if nameTokens[tok] {
				return h, true
			}
		}
	}

	return models.Hall{}, false
}

func tokenize(text string) map[string]bool {
	tokens := map[string]bool{}
	for _, f := range strings.Fields(text) {
		tok := strings.Trim(f, " ?.!,;:'\"()")
		if tok != "" {
			tokens[tok] = true
		}
	}
	return tokens
}

// rankHalls scores every hall by wanted-tag overlap and returns the top
// entries. The sort is stable so equal scores keep collection order.
func rankHalls(halls []models.Hall, wanted []string) []models.Hall {
	ranked := make([]models.Hall, len(halls))
	copy(ranked, halls)

	scores := make(map[string]int, len(ranked))
	for _, h := range ranked {
		scores[h.Name] = tagScore(wanted, h.Tags, h.LifestyleTags)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].Name] > scores[ranked[j].Name]
	})

	if len(ranked) > shortlistMaxSize {
		ranked = ranked[:shortlistMaxSize]
	}
	return ranked
}
