package pipeline

import (
	"context"
	"testing"

	"campus-assistant/internal/answer"
	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/eval"
	"campus-assistant/internal/models"
	"campus-assistant/internal/nlu"
	"campus-assistant/internal/nlu/gazetteer"
	"campus-assistant/internal/nlu/intent"
	"campus-assistant/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Halls(_ context.Context) ([]models.Hall, error) {
	return nil, assert.AnError
}

func newTestSystem(t *testing.T, halls store.HallReader) *System {
	t.Helper()
	log := logger.NewTestLogger(t)

	rules, skipped := intent.FromDocuments([]intent.Document{
		{Intent: "ask_accommodation", Patterns: []intent.Pattern{
			{Regex: `\baccommodation\b|\bhalls?\b`, Flags: []string{"IGNORECASE"}},
		}},
		{Intent: "ask_library", Patterns: []intent.Pattern{
			{Regex: `\blibrary\b`, Flags: []string{"IGNORECASE"}},
		}},
	})
	require.Zero(t, skipped)

	gaz := gazetteer.New([]gazetteer.SlotType{
		{Name: "hall", Entries: []gazetteer.Entry{
			{Canonical: "butler court", Aliases: []string{"butler"}},
		}},
	})

	return NewSystem(
		nlu.NewProcessor(gaz, rules, nil, log),
		answer.NewSynthesizer(log),
		eval.NewEvaluator(log),
		halls,
		log,
	)
}

func systemHalls() store.HallReader {
	return store.NewStaticStore([]models.Hall{
		{
			Name:             "Butler Court",
			ShortDescription: "Budget-friendly hall close to campus.",
			Tags:             []string{"budget", "close_to_campus"},
			OfficialURL:      "https://example.ac.uk/butler-court",
		},
		{
			Name:             "Royce Hall",
			ShortDescription: "Lively hall popular with first years.",
			Tags:             []string{"budget"},
			LifestyleTags:    []string{"social"},
		},
	})
}

func TestAskEndToEndDetail(t *testing.T) {
	s := newTestSystem(t, systemHalls())

	resp := s.Ask(context.Background(), "Tell me about Butler Court accommodation and prices")

	assert.Equal(t, "accommodation", resp.Processed.Domain)
	assert.Equal(t, "ask_accommodation", resp.Processed.Intent)
	assert.Equal(t, models.AnswerStateDetail, resp.Answer.Debug["strategy"])
	require.Len(t, resp.Answer.Sources, 1)
	assert.Equal(t, "Butler Court", resp.Answer.Sources[0].Title)
	assert.True(t, resp.Evaluation.Passed)
}

func TestAskEndToEndShortlist(t *testing.T) {
	s := newTestSystem(t, systemHalls())

	resp := s.Ask(context.Background(), "What halls are budget friendly?")

	assert.Equal(t, models.AnswerStateShortlist, resp.Answer.Debug["strategy"])
	assert.LessOrEqual(t, len(resp.Answer.Sources), 3)
	assert.Equal(t, "Butler Court", resp.Answer.Sources[0].Title)
}

func TestAskEmptyQuestion(t *testing.T) {
	s := newTestSystem(t, systemHalls())

	resp := s.Ask(context.Background(), "")

	assert.Equal(t, "", resp.Processed.CleanText)
	assert.Empty(t, resp.Processed.Intent)
	assert.Equal(t, models.AnswerStateUndetermined, resp.Answer.Debug["strategy"])
	assert.GreaterOrEqual(t, resp.Answer.Confidence, 0.1)
}

func TestAnswerDegradesWhenStoreFails(t *testing.T) {
	s := newTestSystem(t, failingStore{})

	resp := s.Ask(context.Background(), "Tell me about Butler Court accommodation")

	assert.Equal(t, models.AnswerStateNoData, resp.Answer.Debug["strategy"])
}

func TestProcessAndAnswerCompose(t *testing.T) {
	s := newTestSystem(t, systemHalls())
	ctx := context.Background()

	processed := s.Process(ctx, "is butler court good for social students?")
	answered := s.Answer(ctx, processed)

	assert.Equal(t, models.AnswerStateDetail, answered.Debug["strategy"])
	assert.Equal(t, "Butler Court", answered.Debug["matchedHall"])
}
