// Package nlu turns a raw question into a structured, retrieval-ready
// representation: normalized text, intent, domain, slots and a query string.
// Processing is stateless; one Processor serves concurrent requests.
package nlu

import (
	"context"

	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/models"
	"campus-assistant/internal/nlu/classifier"
	"campus-assistant/internal/nlu/gazetteer"
	"campus-assistant/internal/nlu/intent"
	"campus-assistant/internal/nlu/normalize"
)

// domainConfidence is assigned whenever an intent maps onto a domain.
const domainConfidence = 0.8

type Processor struct {
	gaz        *gazetteer.Gazetteer
	rules      *intent.RuleSet
	classifier classifier.IntentClassifier
	logger     logger.Logger
}

func NewProcessor(
	gaz *gazetteer.Gazetteer,
	rules *intent.RuleSet,
	clf classifier.IntentClassifier,
	log logger.Logger,
) *Processor {
	if clf == nil {
		clf = classifier.Noop{}
	}
	return &Processor{
		gaz:        gaz,
		rules:      rules,
		classifier: clf,
		logger:     log,
	}
}

// Process runs the full understanding pipeline over one question. It never
// fails: unresolvable input produces empty intent/domain with zero confidence.
func (p *Processor) Process(ctx context.Context, text string) models.ProcessorOutput {
	clean := normalize.Clean(text)

	label, intentConf := p.resolveIntent(ctx, clean)
	domain := intent.DomainFor(label)

	slots, slotTerms := p.extractSlots(clean)
	query := buildRetrievalQuery(clean, domain, slotTerms)

	domainConf := 0.0
	if domain != "" {
		domainConf = domainConfidence
	}

	p.logger.Debug("question processed", map[string]interface{}{
		"intent":    label,
		"domain":    domain,
		"slotTypes": len(slots),
	})

	return models.ProcessorOutput{
		RawText:        text,
		CleanText:      clean,
		Domain:         domain,
		Intent:         label,
		Slots:          slots,
		RetrievalQuery: query,
		Confidence: models.ConfidenceBreakdown{
			Intent: intentConf,
			Domain: domainConf,
		},
	}
}

// resolveIntent scans the ordered rule list first; the classifier is only
// consulted when no rule fires, and its answer is advisory.
func (p *Processor) resolveIntent(ctx context.Context, clean string) (string, float64) {
	if label, ok := p.rules.Match(clean); ok {
		return label, intent.RuleMatchConfidence
	}

	res := p.classifier.Classify(ctx, clean, p.rules.Labels())
	if res.Intent != "" {
		return res.Intent, res.Confidence
	}

	return "", 0.0
}
