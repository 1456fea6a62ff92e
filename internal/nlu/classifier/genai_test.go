// internal/nlu/classifier/genai_test.go
package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-assistant/internal/common/logger"
)

func newTestGenAI(t *testing.T, serverURL string, timeout time.Duration) *GenAI {
	t.Helper()
	return NewGenAI(GenAIConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Timeout: timeout,
	}, logger.NewNoOpLogger())
}

func TestGenAIClassifySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/parse-intent", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Query          string   `json:"query"`
			AllowedIntents []string `json:"allowedIntents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "how do i enrol", req.Query)
		assert.Contains(t, req.AllowedIntents, "ask_course_info")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"intent":     "ask_course_info",
			"confidence": 0.72,
		})
	}))
	defer server.Close()

	g := newTestGenAI(t, server.URL, 5*time.Second)
	result := g.Classify(context.Background(), "how do i enrol", []string{"ask_course_info", "ask_fees"})

	assert.Equal(t, "ask_course_info", result.Intent)
	assert.InDelta(t, 0.72, result.Confidence, 1e-9)
}

func TestGenAIClassifyRejectsLabelOutsideAllowedSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"intent":     "made_up_intent",
			"confidence": 0.99,
		})
	}))
	defer server.Close()

	g := newTestGenAI(t, server.URL, 5*time.Second)
	result := g.Classify(context.Background(), "anything", []string{"ask_fees"})

	assert.Equal(t, NoOpinion, result)
}

func TestGenAIClassifyDegradesOnTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	g := newTestGenAI(t, server.URL, 50*time.Millisecond)
	result := g.Classify(context.Background(), "anything", []string{"ask_fees"})

	assert.Equal(t, NoOpinion, result)
}

func TestGenAIClassifyDegradesOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	g := newTestGenAI(t, server.URL, 5*time.Second)
	result := g.Classify(context.Background(), "anything", []string{"ask_fees"})

	assert.Equal(t, NoOpinion, result)
}

func TestGenAIClassifyDegradesOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	g := newTestGenAI(t, server.URL, 5*time.Second)
	result := g.Classify(context.Background(), "anything", []string{"ask_fees"})

	assert.Equal(t, NoOpinion, result)
}

func TestGenAIClassifyEmptyAllowedSet(t *testing.T) {
	g := newTestGenAI(t, "http://127.0.0.1:1", 5*time.Second)
	assert.Equal(t, NoOpinion, g.Classify(context.Background(), "anything", nil))
}

func TestGenAIClassifyClampsConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"intent":     "ask_fees",
			"confidence": 1.8,
		})
	}))
	defer server.Close()

	g := newTestGenAI(t, server.URL, 5*time.Second)
	result := g.Classify(context.Background(), "anything", []string{"ask_fees"})

	assert.Equal(t, 1.0, result.Confidence)
}

func TestFromConfig(t *testing.T) {
	log := logger.NewNoOpLogger()

	_, isNoop := FromConfig(GenAIConfig{}, log).(Noop)
	assert.True(t, isNoop, "missing config selects the no-op variant")

	_, isNoop = FromConfig(GenAIConfig{BaseURL: "http://x"}, log).(Noop)
	assert.True(t, isNoop, "missing api key selects the no-op variant")

	_, isGenAI := FromConfig(GenAIConfig{BaseURL: "http://x", APIKey: "k"}, log).(*GenAI)
	assert.True(t, isGenAI)
}
