package eval

import (
	"strings"
	"testing"

	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/models"

	"github.com/stretchr/testify/assert"
)

func newEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	return NewEvaluator(logger.NewTestLogger(t))
}

func TestEvaluateGoodDetailAnswer(t *testing.T) {
	e := newEvaluator(t)

	out := models.ProcessorOutput{
		CleanText: "tell me about butler court",
		Domain:    "accommodation",
		Slots:     models.SlotMap{"hall": {"butler court"}},
	}
	res := models.AnswerResult{
		Answer: "Butler Court\nA friendly budget hall close to campus. " +
			strings.Repeat("More detail about rooms and prices. ", 3),
		Sources:    []models.Source{{Title: "Butler Court"}},
		Confidence: 0.9,
		Debug:      map[string]interface{}{"strategy": models.AnswerStateDetail},
	}

	ev := e.Evaluate(out, res)

	assert.Equal(t, 100.0, ev.RelevanceScore)
	assert.Equal(t, 100.0, ev.CompletenessScore)
	assert.True(t, ev.Passed)
	assert.GreaterOrEqual(t, ev.OverallScore, ev.QualityThreshold)
	assert.Equal(t, []string{"The answer meets quality standards"}, ev.Suggestions)
}

func TestEvaluateUndeterminedAnswerFails(t *testing.T) {
	e := newEvaluator(t)

	out := models.ProcessorOutput{CleanText: ""}
	res := models.AnswerResult{
		Answer:     "I'm not sure what you're asking about.",
		Confidence: 0.1,
		Debug:      map[string]interface{}{"strategy": models.AnswerStateUndetermined},
	}

	ev := e.Evaluate(out, res)

	assert.False(t, ev.Passed)
	assert.Less(t, ev.OverallScore, ev.QualityThreshold)
	assert.NotEmpty(t, ev.Suggestions)
	assert.NotEqual(t, []string{"The answer meets quality standards"}, ev.Suggestions)
}

func TestEvaluateEmptyAnswer(t *testing.T) {
	e := newEvaluator(t)

	ev := e.Evaluate(models.ProcessorOutput{}, models.AnswerResult{})

	assert.Zero(t, ev.ClarityScore)
	assert.False(t, ev.Passed)
}

func TestEvaluateRelevanceCountsSlotMentions(t *testing.T) {
	e := newEvaluator(t)

	out := models.ProcessorOutput{
		Domain: "accommodation",
		Slots:  models.SlotMap{"hall": {"butler court", "royce hall"}},
	}
	res := models.AnswerResult{
		Answer: "Butler Court is a budget hall.",
		Debug:  map[string]interface{}{"strategy": models.AnswerStateDetail},
	}

	ev := e.Evaluate(out, res)

	// One of two slot values mentioned: 50*0.6 + 100*0.4 = 70.
	assert.Equal(t, 70.0, ev.RelevanceScore)
}

func TestEvaluateScoresStayInRange(t *testing.T) {
	e := newEvaluator(t)

	cases := []models.AnswerResult{
		{},
		{Answer: "short", Confidence: 1.0},
		{Answer: strings.Repeat("word ", 500), Confidence: 0.99,
			Debug: map[string]interface{}{"strategy": models.AnswerStateDetail}},
	}

	for _, res := range cases {
		ev := e.Evaluate(models.ProcessorOutput{}, res)
		for _, score := range []float64{ev.OverallScore, ev.RelevanceScore, ev.CompletenessScore, ev.ClarityScore, ev.AccuracyScore} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}

func TestEvaluateCustomThreshold(t *testing.T) {
	e := NewEvaluatorWith(DefaultWeights, 99.5, logger.NewTestLogger(t))

	res := models.AnswerResult{
		Answer:     "A clear, complete answer with sources. It covers the question because it cites records.",
		Sources:    []models.Source{{Title: "Butler Court"}},
		Confidence: 0.9,
		Debug:      map[string]interface{}{"strategy": models.AnswerStateDetail},
	}

	ev := e.Evaluate(models.ProcessorOutput{Domain: "accommodation"}, res)

	assert.False(t, ev.Passed)
	assert.Equal(t, 99.5, ev.QualityThreshold)
}
