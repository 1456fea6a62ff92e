// internal/workers/assistant/escalate-unanswered/handler.go
package escalateunanswered

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/common/metrics"
)

const (
	TaskType = "escalate-unanswered"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// EmailSender is satisfied by aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSPublisher is satisfied by aws.SNSClient.
type SMSPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Handler struct {
	config *Config
	email  EmailSender
	sms    SMSPublisher
	logger logger.Logger
}

func NewHandler(config *Config, email EmailSender, sms SMSPublisher, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		email:  email,
		sms:    sms,
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "NOTIFICATION_SEND_FAILED").Inc()
		h.failJob(client, job, "NOTIFICATION_SEND_FAILED", err.Error(), 2)
		return err
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	return nil
}

// execute decides whether the answer needs a human follow-up and notifies
// staff over every enabled channel. Escalation triggers when confidence is
// below the configured threshold or the quality evaluation did not pass.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrNotificationSendFailed)
	}

	reason := h.escalationReason(input)
	if reason == "" {
		h.logger.Info("no escalation needed", map[string]interface{}{
			"confidence":   input.Answer.Confidence,
			"overallScore": input.Evaluation.OverallScore,
		})
		return &Output{Escalated: false, Channels: []string{}}, nil
	}

	// The escalation id ties the staff notifications back to this process
	// instance when someone follows up.
	escalationID := uuid.New().String()
	channels := []string{}

	if h.config.EmailEnabled && h.email != nil {
		if err := h.sendEmail(ctx, input, reason, escalationID); err != nil {
			return nil, fmt.Errorf("%w: email: %v", ErrNotificationSendFailed, err)
		}
		metrics.EscalationsSent.WithLabelValues("email").Inc()
		channels = append(channels, "email")
	}

	if h.config.SMSEnabled && h.sms != nil {
		if err := h.sendSMS(ctx, input); err != nil {
			return nil, fmt.Errorf("%w: sms: %v", ErrNotificationSendFailed, err)
		}
		metrics.EscalationsSent.WithLabelValues("sms").Inc()
		channels = append(channels, "sms")
	}

	h.logger.Info("question escalated", map[string]interface{}{
		"escalationId": escalationID,
		"reason":       reason,
		"channels":     channels,
	})

	return &Output{Escalated: true, EscalationID: escalationID, Channels: channels, Reason: reason}, nil
}

func (h *Handler) escalationReason(input *Input) string {
	if input.Answer.Confidence < h.config.ConfidenceThreshold {
		return "confidence_below_threshold"
	}
	if !input.Evaluation.Passed {
		return "evaluation_failed"
	}
	return ""
}

func (h *Handler) sendEmail(ctx context.Context, input *Input, reason, escalationID string) error {
	subject := "Campus assistant: unanswered question"
	body := fmt.Sprintf(
		"A question could not be answered confidently.\n\n"+
			"Escalation: %s\n"+
			"Question: %s\n"+
			"Answer given: %s\n"+
			"Confidence: %.2f\n"+
			"Quality score: %.1f (passed: %t)\n"+
			"Reason: %s\n",
		escalationID,
		input.Processed.RawText,
		input.Answer.Answer,
		input.Answer.Confidence,
		input.Evaluation.OverallScore,
		input.Evaluation.Passed,
		reason,
	)

	_, err := h.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(h.config.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{h.config.ToEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, input *Input) error {
	message := fmt.Sprintf(
		"Campus assistant escalation: %q (confidence %.2f)",
		input.Processed.RawText,
		input.Answer.Confidence,
	)

	_, err := h.sms.Publish(ctx, &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(h.config.PhoneNumber),
	})
	return err
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
