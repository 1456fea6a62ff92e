package answerquestion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-assistant/internal/answer"
	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/models"
	"campus-assistant/internal/store"
)

type failingStore struct{}

func (failingStore) Halls(_ context.Context) ([]models.Hall, error) {
	return nil, errors.New("connection refused")
}

func testHalls() []models.Hall {
	return []models.Hall{
		{
			Name:             "Butler Court",
			ShortDescription: "Self-catered hall close to campus.",
			Tags:             []string{"budget", "close_to_campus"},
			OfficialURL:      "https://halls.example.ac.uk/butler-court",
		},
		{
			Name:             "Royce Hall",
			ShortDescription: "Lively undergraduate hall.",
			Tags:             []string{"budget", "social"},
			OfficialURL:      "https://halls.example.ac.uk/royce-hall",
		},
	}
}

func newTestHandler(t *testing.T, halls store.HallReader) *Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	return NewHandler(LoadConfig(), answer.NewSynthesizer(log), halls, log)
}

func accommodationOutput(clean string) models.ProcessorOutput {
	return models.ProcessorOutput{
		RawText:   clean,
		CleanText: clean,
		Intent:    "ask_accommodation",
		Domain:    "accommodation",
		Slots:     models.SlotMap{},
		Confidence: models.ConfidenceBreakdown{
			Intent: 0.9,
			Domain: 0.8,
		},
	}
}

func TestExecuteDetailAnswer(t *testing.T) {
	h := newTestHandler(t, store.NewStaticStore(testHalls()))

	processed := accommodationOutput("tell me about butler court")
	processed.Slots.Add("hall", "butler court")

	output, err := h.Execute(context.Background(), &Input{Processed: processed})

	require.NoError(t, err)
	assert.Equal(t, models.AnswerStateDetail, output.Answer.Debug["strategy"])
	assert.Contains(t, output.Answer.Answer, "Butler Court")
	require.Len(t, output.Answer.Sources, 1)
	assert.Equal(t, "Butler Court", output.Answer.Sources[0].Title)
}

func TestExecuteShortlistAnswer(t *testing.T) {
	h := newTestHandler(t, store.NewStaticStore(testHalls()))

	output, err := h.Execute(context.Background(), &Input{
		Processed: accommodationOutput("what cheap accommodation do you have"),
	})

	require.NoError(t, err)
	assert.Equal(t, models.AnswerStateShortlist, output.Answer.Debug["strategy"])
	assert.Len(t, output.Answer.Sources, 2)
}

func TestExecuteStoreFailureDegradesToNoData(t *testing.T) {
	h := newTestHandler(t, failingStore{})

	output, err := h.Execute(context.Background(), &Input{
		Processed: accommodationOutput("tell me about butler court"),
	})

	require.NoError(t, err)
	assert.Equal(t, models.AnswerStateNoData, output.Answer.Debug["strategy"])
	assert.Empty(t, output.Answer.Sources)
}

func TestExecuteNilInput(t *testing.T) {
	h := newTestHandler(t, store.NewStaticStore(nil))

	output, err := h.Execute(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrSynthesisFailed)
}
