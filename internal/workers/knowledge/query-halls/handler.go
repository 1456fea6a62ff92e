// internal/workers/knowledge/query-halls/handler.go
package queryhalls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/common/metrics"
	"campus-assistant/internal/models"
	"campus-assistant/internal/store"
)

const (
	TaskType = "query-halls"
)

var (
	ErrKnowledgeLoadFailed = errors.New("KNOWLEDGE_LOAD_FAILED")
	ErrHallNotFound        = errors.New("HALL_NOT_FOUND")
)

type Handler struct {
	config *Config
	halls  store.HallReader
	logger logger.Logger
}

func NewHandler(config *Config, halls store.HallReader, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		halls:  halls,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		errorCode := h.mapErrorToCode(err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.failJob(client, job, errorCode, err.Error(), h.getRetryCount(err))
		return err
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		input = &Input{}
	}

	halls, err := h.halls.Halls(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKnowledgeLoadFailed, err)
	}

	filtered := filterHalls(halls, input)
	if input.Name != "" && len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no hall matches %q", ErrHallNotFound, input.Name)
	}

	h.logger.Info("halls queried", map[string]interface{}{
		"total":    len(halls),
		"returned": len(filtered),
		"name":     input.Name,
		"tags":     input.Tags,
	})

	return &Output{Halls: filtered, Count: len(filtered)}, nil
}

// filterHalls narrows the snapshot by case-insensitive name substring and by
// tag membership; a hall must carry every requested tag, looked up across
// both tag sets.
func filterHalls(halls []models.Hall, input *Input) []models.Hall {
	filtered := make([]models.Hall, 0, len(halls))
	name := strings.ToLower(strings.TrimSpace(input.Name))

	for _, hall := range halls {
		if name != "" && !strings.Contains(strings.ToLower(hall.Name), name) {
			continue
		}
		if !hasAllTags(hall, input.Tags) {
			continue
		}
		filtered = append(filtered, hall)
	}
	return filtered
}

func hasAllTags(hall models.Hall, wanted []string) bool {
	for _, tag := range wanted {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if !containsTag(hall.Tags, tag) && !containsTag(hall.LifestyleTags, tag) {
			return false
		}
	}
	return true
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
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

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) mapErrorToCode(err error) string {
	if errors.Is(err, ErrHallNotFound) {
		return "HALL_NOT_FOUND"
	} else if errors.Is(err, ErrKnowledgeLoadFailed) {
		return "KNOWLEDGE_LOAD_FAILED"
	}
	return "UNKNOWN_ERROR"
}

func (h *Handler) getRetryCount(err error) int32 {
	if errors.Is(err, ErrKnowledgeLoadFailed) {
		return 3
	}
	return 0
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
