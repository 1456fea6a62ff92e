package queryhalls

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
		{Name: "Butler Court", Tags: []string{"budget", "close_to_campus"}, LifestyleTags: []string{"social"}},
		{Name: "Falkner Eggington", Tags: []string{"close_to_campus"}, LifestyleTags: []string{"quiet"}},
		{Name: "Royce Hall", Tags: []string{"budget"}, LifestyleTags: []string{"social", "undergraduate"}},
	}
}

func newTestHandler(t *testing.T, halls store.HallReader) *Handler {
	t.Helper()
	return NewHandler(LoadConfig(), halls, logger.NewTestLogger(t))
}

func TestExecuteReturnsAllHalls(t *testing.T) {
	h := newTestHandler(t, store.NewStaticStore(testHalls()))

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 3, output.Count)
	assert.Len(t, output.Halls, 3)
}

func TestExecuteFiltersByName(t *testing.T) {
	h := newTestHandler(t, store.NewStaticStore(testHalls()))

	output, err := h.Execute(context.Background(), &Input{Name: "butler"})

	require.NoError(t, err)
	require.Equal(t, 1, output.Count)
	assert.Equal(t, "Butler Court", output.Halls[0].Name)
}

func TestExecuteFiltersByTags(t *testing.T) {
	h := newTestHandler(t, store.NewStaticStore(testHalls()))

	output, err := h.Execute(context.Background(), &Input{Tags: []string{"budget", "social"}})

	require.NoError(t, err)
	require.Equal(t, 2, output.Count)
	assert.Equal(t, "Butler Court", output.Halls[0].Name)
	assert.Equal(t, "Royce Hall", output.Halls[1].Name)
}

func TestExecuteNameNotFound(t *testing.T) {
	h := newTestHandler(t, store.NewStaticStore(testHalls()))

	output, err := h.Execute(context.Background(), &Input{Name: "atlantis"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrHallNotFound)
}

func TestExecuteEmptyTagFilterMatchesEverything(t *testing.T) {
	h := newTestHandler(t, store.NewStaticStore(testHalls()))

	output, err := h.Execute(context.Background(), &Input{Tags: []string{"", "  "}})

	require.NoError(t, err)
	assert.Equal(t, 3, output.Count)
}

func TestExecuteStoreFailure(t *testing.T) {
	h := newTestHandler(t, failingStore{})

	output, err := h.Execute(context.Background(), &Input{})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrKnowledgeLoadFailed)
	assert.Equal(t, int32(3), h.getRetryCount(err))
}
