// Package eval scores a synthesized answer for quality before it is handed
// back to the caller. Scores are heuristic and range 0-100 per aspect.
package eval

import (
	"math"
	"strings"

	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/models"
)

// Weights control the blend of aspect scores into the overall score.
type Weights struct {
	Relevance    float64
	Completeness float64
	Clarity      float64
	Accuracy     float64
}

var DefaultWeights = Weights{
	Relevance:    0.35,
	Completeness: 0.25,
	Clarity:      0.20,
	Accuracy:     0.20,
}

// DefaultThreshold is the overall score an answer must reach to pass.
const DefaultThreshold = 70.0

// Evaluation is the scored verdict for one answer.
type Evaluation struct {
	OverallScore      float64  `json:"overallScore"`
	RelevanceScore    float64  `json:"relevanceScore"`
	CompletenessScore float64  `json:"completenessScore"`
	ClarityScore      float64  `json:"clarityScore"`
	AccuracyScore     float64  `json:"accuracyScore"`
	Feedback          string   `json:"feedback"`
	Suggestions       []string `json:"suggestions"`
	Passed            bool     `json:"passed"`
	QualityThreshold  float64  `json:"qualityThreshold"`
}

type Evaluator struct {
	weights   Weights
	threshold float64
	logger    logger.Logger
}

func NewEvaluator(log logger.Logger) *Evaluator {
	return NewEvaluatorWith(DefaultWeights, DefaultThreshold, log)
}

func NewEvaluatorWith(weights Weights, threshold float64, log logger.Logger) *Evaluator {
	return &Evaluator{
		weights:   weights,
		threshold: threshold,
		logger:    log,
	}
}

// Evaluate scores one answer against the processed question it came from.
func (e *Evaluator) Evaluate(out models.ProcessorOutput, res models.AnswerResult) Evaluation {
	relevance := e.evaluateRelevance(out, res)
	completeness := e.evaluateCompleteness(res)
	clarity := e.evaluateClarity(res)
	accuracy := e.evaluateAccuracy(res)

	overall := round2(
		relevance*e.weights.Relevance +
			completeness*e.weights.Completeness +
			clarity*e.weights.Clarity +
			accuracy*e.weights.Accuracy,
	)

	ev := Evaluation{
		OverallScore:      overall,
		RelevanceScore:    relevance,
		CompletenessScore: completeness,
		ClarityScore:      clarity,
		AccuracyScore:     accuracy,
		Feedback:          feedback(relevance, completeness, clarity, accuracy),
		Suggestions:       suggestions(relevance, completeness, clarity, accuracy),
		Passed:            overall >= e.threshold,
		QualityThreshold:  e.threshold,
	}

	e.logger.Debug("answer evaluated", map[string]interface{}{
		"overallScore": ev.OverallScore,
		"passed":       ev.Passed,
	})

	return ev
}

// evaluateRelevance checks whether extracted slot values show up in the
// answer and whether the request resolved to an addressable domain.
func (e *Evaluator) evaluateRelevance(out models.ProcessorOutput, res models.AnswerResult) float64 {
	answer := strings.ToLower(res.Answer)

	var slotValues []string
	for _, values := range out.Slots {
		slotValues = append(slotValues, values...)
	}

	slotScore := 50.0
	if len(slotValues) > 0 {
		matches := 0
		for _, v := range slotValues {
			if strings.Contains(answer, strings.ToLower(v)) {
				matches++
			}
		}
		slotScore = float64(matches) / float64(len(slotValues)) * 100
	}

	domainScore := 70.0
	if out.Domain != "" && res.Debug["strategy"] != models.AnswerStateUndetermined {
		domainScore = 100.0
	}

	return clamp100(slotScore*0.6 + domainScore*0.4)
}

func (e *Evaluator) evaluateCompleteness(res models.AnswerResult) float64 {
	score := 0.0

	if len(res.Answer) > 20 {
		score += 40
	}
	if len(res.Sources) > 0 {
		score += 20
	}
	if len(res.Debug) > 0 {
		score += 20
	}
	if res.Confidence >= 0.5 {
		score += 20
	}

	return math.Min(100, score)
}

func (e *Evaluator) evaluateClarity(res models.AnswerResult) float64 {
	if res.Answer == "" {
		return 0
	}

	score := 50.0

	words := len(strings.Fields(res.Answer))
	if words >= 10 && words <= 200 {
		score += 25
	} else if words > 5 {
		score += 15
	}

	if strings.ContainsAny(res.Answer, ".!?:") {
		score += 15
	}

	lower := strings.ToLower(res.Answer)
	for _, indicator := range []string{"\n- ", "first", "because", "however"} {
		if strings.Contains(lower, indicator) {
			score += 10
			break
		}
	}

	return math.Min(100, score)
}

func (e *Evaluator) evaluateAccuracy(res models.AnswerResult) float64 {
	var score float64
	switch {
	case res.Confidence >= 0.75:
		score = 85
	case res.Confidence >= 0.5:
		score = 70
	default:
		score = 50
	}

	strategy, _ := res.Debug["strategy"].(string)
	if strategy == models.AnswerStateDetail && res.Confidence >= 0.5 {
		score += 10
	}
	if strategy == models.AnswerStateUndetermined && res.Confidence < 0.5 {
		score -= 10
	}

	return clamp100(score)
}

func feedback(relevance, completeness, clarity, accuracy float64) string {
	var parts []string

	switch {
	case relevance >= 80:
		parts = append(parts, "The answer is highly relevant to the question.")
	case relevance >= 60:
		parts = append(parts, "The answer is reasonably relevant but could be more focused.")
	default:
		parts = append(parts, "The answer lacks relevance to the original question.")
	}

	switch {
	case completeness >= 80:
		parts = append(parts, "The answer is comprehensive and well-supported.")
	case completeness >= 60:
		parts = append(parts, "The answer covers the main points but lacks some details.")
	default:
		parts = append(parts, "The answer is incomplete and needs more information.")
	}

	switch {
	case clarity >= 80:
		parts = append(parts, "The answer is clear and well-structured.")
	case clarity >= 60:
		parts = append(parts, "The answer is understandable but could be clearer.")
	default:
		parts = append(parts, "The answer lacks clarity and structure.")
	}

	switch {
	case accuracy >= 80:
		parts = append(parts, "The answer appears to be accurate and reliable.")
	case accuracy >= 60:
		parts = append(parts, "The answer seems reasonably accurate but needs verification.")
	default:
		parts = append(parts, "The accuracy of the answer is questionable.")
	}

	return strings.Join(parts, " ")
}

func suggestions(relevance, completeness, clarity, accuracy float64) []string {
	var out []string

	if relevance < 70 {
		out = append(out, "Mention the places or halls the question asked about in the answer")
	}
	if completeness < 70 {
		out = append(out, "Add more supporting details and cite sources")
	}
	if clarity < 70 {
		out = append(out, "Improve structure and readability of the answer")
	}
	if accuracy < 70 {
		out = append(out, "Verify information and provide more confident responses")
	}

	if len(out) == 0 {
		out = append(out, "The answer meets quality standards")
	}

	return out
}

func clamp100(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
