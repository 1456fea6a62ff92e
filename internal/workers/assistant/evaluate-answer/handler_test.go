package evaluateanswer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/eval"
	"campus-assistant/internal/models"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	return NewHandler(LoadConfig(), eval.NewEvaluator(log), log)
}

func TestExecuteGoodAnswerPasses(t *testing.T) {
	h := newTestHandler(t)

	processed := models.ProcessorOutput{
		CleanText: "tell me about butler court",
		Intent:    "ask_accommodation",
		Domain:    "accommodation",
		Slots:     models.SlotMap{"hall": {"butler court"}},
		Confidence: models.ConfidenceBreakdown{
			Intent: 0.9,
			Domain: 0.8,
		},
	}
	answer := models.AnswerResult{
		Answer: "Butler Court is a self-catered hall close to campus. " +
			"It offers standard rooms over a 39-week tenancy, because most residents are first years.",
		Sources: []models.Source{
			{Title: "Butler Court", URL: "https://halls.example.ac.uk/butler-court"},
		},
		Confidence: 0.95,
		Debug:      map[string]interface{}{"strategy": models.AnswerStateDetail},
	}

	output, err := h.Execute(context.Background(), &Input{Processed: processed, Answer: answer})

	require.NoError(t, err)
	assert.True(t, output.Evaluation.Passed)
	assert.GreaterOrEqual(t, output.Evaluation.OverallScore, 70.0)
	assert.NotEmpty(t, output.Evaluation.Feedback)
}

func TestExecuteUndeterminedAnswerFails(t *testing.T) {
	h := newTestHandler(t)

	processed := models.ProcessorOutput{
		CleanText: "hmm",
		Slots:     models.SlotMap{},
	}
	answer := models.AnswerResult{
		Answer:     "I'm not sure what you're asking about.",
		Confidence: 0.1,
		Debug:      map[string]interface{}{"strategy": models.AnswerStateUndetermined},
	}

	output, err := h.Execute(context.Background(), &Input{Processed: processed, Answer: answer})

	require.NoError(t, err)
	assert.False(t, output.Evaluation.Passed)
	assert.NotEmpty(t, output.Evaluation.Suggestions)
}

func TestExecuteNilInput(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrEvaluationFailed)
}
