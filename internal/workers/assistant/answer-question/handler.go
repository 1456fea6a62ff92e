// internal/workers/assistant/answer-question/handler.go
package answerquestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"campus-assistant/internal/answer"
	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/common/metrics"
	"campus-assistant/internal/models"
	"campus-assistant/internal/store"
)

const (
	TaskType = "answer-question"
)

var (
	ErrSynthesisFailed = errors.New("SYNTHESIS_FAILED")
)

type Handler struct {
	config      *Config
	synthesizer *answer.Synthesizer
	halls       store.HallReader
	logger      logger.Logger
}

func NewHandler(config *Config, synthesizer *answer.Synthesizer, halls store.HallReader, log logger.Logger) *Handler {
	return &Handler{
		config:      config,
		synthesizer: synthesizer,
		halls:       halls,
		logger:      log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR").Inc()
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "SYNTHESIS_FAILED").Inc()
		h.failJob(client, job, "SYNTHESIS_FAILED", err.Error(), 0)
		return err
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	return nil
}

// execute reads the hall snapshot and runs the synthesizer. A store read
// failure degrades to an empty snapshot so the state machine terminates in
// its no-data state instead of failing the job.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrSynthesisFailed)
	}

	halls, err := h.halls.Halls(ctx)
	if err != nil {
		h.logger.Warn("hall snapshot unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		halls = nil
	}

	result := h.synthesizer.Synthesize(input.Processed, halls)

	state := models.AnswerStateUndetermined
	if s, ok := result.Debug["strategy"].(string); ok {
		state = s
	}
	metrics.AnswersSynthesized.WithLabelValues(state).Inc()
	metrics.AnswerConfidence.Observe(result.Confidence)

	h.logger.Info("answer synthesized", map[string]interface{}{
		"state":      state,
		"confidence": result.Confidence,
		"sources":    len(result.Sources),
		"halls":      len(halls),
	})

	return &Output{Answer: result}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	_, err := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(errorCode + ": " + errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to fail job", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
