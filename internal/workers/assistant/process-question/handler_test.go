package processquestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/nlu"
	"campus-assistant/internal/nlu/gazetteer"
	"campus-assistant/internal/nlu/intent"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	rules, skipped := intent.FromDocuments([]intent.Document{
		{Intent: "ask_location", Patterns: []intent.Pattern{
			{Regex: `\bwhere(?:'s| is)\b`, Flags: []string{"IGNORECASE"}},
		}},
		{Intent: "ask_accommodation", Patterns: []intent.Pattern{
			{Regex: `\baccommodation\b|\bhalls?\b`, Flags: []string{"IGNORECASE"}},
		}},
	})
	require.Zero(t, skipped)

	gaz := gazetteer.New([]gazetteer.SlotType{
		{Name: "hall", Entries: []gazetteer.Entry{
			{Canonical: "butler court", Aliases: []string{"butler"}},
		}},
	})

	log := logger.NewTestLogger(t)
	processor := nlu.NewProcessor(gaz, rules, nil, log)

	return NewHandler(LoadConfig(), processor, log)
}

func TestExecuteResolvesIntentAndSlots(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Question: "Where is Butler Court?"})

	require.NoError(t, err)
	assert.Equal(t, "where is butler court?", output.Processed.CleanText)
	assert.Equal(t, "ask_location", output.Processed.Intent)
	assert.Equal(t, "location", output.Processed.Domain)
	assert.Equal(t, 0.9, output.Processed.Confidence.Intent)
	assert.Equal(t, []string{"butler court"}, output.Processed.Slots["hall"])
}

func TestExecuteEmptyQuestionStillSucceeds(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Question: "   "})

	require.NoError(t, err)
	assert.Empty(t, output.Processed.Intent)
	assert.Empty(t, output.Processed.Domain)
	assert.Zero(t, output.Processed.Confidence.Intent)
}

func TestExecuteNilInput(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrQuestionParsingFailed)
}

func TestMapErrorToCode(t *testing.T) {
	h := newTestHandler(t)

	assert.Equal(t, "QUESTION_PARSING_FAILED", h.mapErrorToCode(ErrQuestionParsingFailed))
	assert.Equal(t, "UNKNOWN_ERROR", h.mapErrorToCode(assert.AnError))
}
