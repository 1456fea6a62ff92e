package searchdocuments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-assistant/internal/common/logger"
)

func newTestHandler(t *testing.T, serverURL string) *Handler {
	t.Helper()

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{serverURL},
	})
	require.NoError(t, err)

	return NewHandler(LoadConfig(), client, logger.NewTestLogger(t))
}

func esResponse(w http.ResponseWriter, status int, body string) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestExecuteSearchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		esResponse(w, http.StatusOK, `{
			"took": 4,
			"hits": {
				"total": {"value": 2},
				"max_score": 1.8,
				"hits": [
					{"_source": {"name": "Butler Court", "tags": ["budget"]}},
					{"_source": {"name": "Royce Hall", "tags": ["budget", "social"]}}
				]
			}
		}`)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)

	output, err := h.Execute(context.Background(), &Input{Query: "budget hall"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), output.TotalHits)
	assert.Equal(t, 1.8, output.MaxScore)
	require.Len(t, output.Documents, 2)
	assert.Equal(t, "Butler Court", output.Documents[0]["name"])
}

func TestExecuteIndexNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		esResponse(w, http.StatusNotFound, `{"error": {"type": "index_not_found_exception"}}`)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)

	output, err := h.Execute(context.Background(), &Input{Query: "anything", Index: "missing"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrIndexNotFound)
}

func TestExecuteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		esResponse(w, http.StatusInternalServerError, `{"error": {"type": "search_phase_execution_exception"}}`)
	}))
	defer server.Close()

	h := newTestHandler(t, server.URL)

	output, err := h.Execute(context.Background(), &Input{Query: "anything"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrSearchQueryFailed)
}

func TestExecuteEmptyQuery(t *testing.T) {
	h := newTestHandler(t, "http://localhost:9200")

	output, err := h.Execute(context.Background(), &Input{Query: "  "})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrSearchQueryFailed)
}

func TestBuildSearchBody(t *testing.T) {
	body := buildSearchBody("cheap hall", []string{"budget", " "})

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)

	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 1)
	term := filters[0].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "budget", term["tags"])
}

func TestBuildSearchBodyNoTags(t *testing.T) {
	body := buildSearchBody("cheap hall", nil)

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	_, hasFilter := boolQuery["filter"]
	assert.False(t, hasFilter)
}

func TestGetRetryCount(t *testing.T) {
	h := &Handler{}

	assert.Equal(t, int32(3), h.getRetryCount(ErrElasticsearchConnectionFailed))
	assert.Equal(t, int32(2), h.getRetryCount(ErrSearchTimeout))
	assert.Equal(t, int32(0), h.getRetryCount(ErrIndexNotFound))
}
