// internal/nlu/classifier/genai.go
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	commonhttp "campus-assistant/internal/common/http"
	"campus-assistant/internal/common/logger"
)

// GenAIConfig configures the network-backed classifier.
type GenAIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// GenAI calls the GenAI intent endpoint. It is a single bounded-timeout call
// with no retries; every failure path returns NoOpinion so the resolver's
// control flow never blocks indefinitely nor fails the request.
type GenAI struct {
	config GenAIConfig
	client *commonhttp.Client
	logger logger.Logger
}

// NewGenAI builds the network-backed classifier.
func NewGenAI(config GenAIConfig, log logger.Logger) *GenAI {
	if config.Timeout <= 0 {
		config.Timeout = 20 * time.Second
	}
	return &GenAI{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		logger: log.WithFields(map[string]interface{}{"component": "genai-classifier"}),
	}
}

// FromConfig selects the classifier variant: the network-backed one when a
// base URL and API key are configured, otherwise the no-op variant.
func FromConfig(config GenAIConfig, log logger.Logger) IntentClassifier {
	if config.BaseURL == "" || config.APIKey == "" {
		return Noop{}
	}
	return NewGenAI(config, log)
}

func (g *GenAI) Classify(ctx context.Context, text string, allowed []string) Result {
	if len(allowed) == 0 {
		return NoOpinion
	}

	requestBody := map[string]interface{}{
		"query":          text,
		"allowedIntents": allowed,
	}
	body, _ := json.Marshal(requestBody)

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL+"/api/ai/parse-intent", bytes.NewBuffer(body))
	if err != nil {
		return NoOpinion
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("classifier call failed", map[string]interface{}{"error": err.Error()})
		return NoOpinion
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("classifier returned non-OK status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return NoOpinion
	}

	var apiResponse struct {
		Intent     string  `json:"intent"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		g.logger.Warn("classifier response malformed", map[string]interface{}{"error": err.Error()})
		return NoOpinion
	}

	// Labels outside the allowed set are discarded, not adopted.
	for _, label := range allowed {
		if apiResponse.Intent == label {
			return Result{Intent: label, Confidence: clamp01(apiResponse.Confidence)}
		}
	}

	return NoOpinion
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
