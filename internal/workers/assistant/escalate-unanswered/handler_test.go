package escalateunanswered

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/eval"
	"campus-assistant/internal/models"
)

type stubEmailSender struct {
	sent []*ses.SendEmailInput
	err  error
}

func (s *stubEmailSender) SendEmail(_ context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, input)
	return &ses.SendEmailOutput{}, nil
}

type stubSMSPublisher struct {
	published []*sns.PublishInput
	err       error
}

func (s *stubSMSPublisher) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.published = append(s.published, input)
	return &sns.PublishOutput{}, nil
}

func testConfig() *Config {
	return &Config{
		ConfidenceThreshold: 0.3,
		EmailEnabled:        true,
		FromEmail:           "assistant@campus.example.ac.uk",
		ToEmail:             "support@campus.example.ac.uk",
		SMSEnabled:          true,
		PhoneNumber:         "+441509000000",
	}
}

func lowConfidenceInput() *Input {
	return &Input{
		Processed: models.ProcessorOutput{
			RawText:   "What colour is the moon?",
			CleanText: "what colour is the moon?",
			Slots:     models.SlotMap{},
		},
		Answer: models.AnswerResult{
			Answer:     "I'm not sure what you're asking about.",
			Confidence: 0.1,
		},
		Evaluation: eval.Evaluation{OverallScore: 45.0, Passed: false},
	}
}

func confidentInput() *Input {
	return &Input{
		Processed: models.ProcessorOutput{
			RawText: "Tell me about Butler Court",
			Slots:   models.SlotMap{},
		},
		Answer:     models.AnswerResult{Answer: "Butler Court ...", Confidence: 0.95},
		Evaluation: eval.Evaluation{OverallScore: 88.0, Passed: true},
	}
}

func TestExecuteEscalatesLowConfidence(t *testing.T) {
	email := &stubEmailSender{}
	sms := &stubSMSPublisher{}
	h := NewHandler(testConfig(), email, sms, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), lowConfidenceInput())

	require.NoError(t, err)
	assert.True(t, output.Escalated)
	assert.Equal(t, "confidence_below_threshold", output.Reason)
	assert.Equal(t, []string{"email", "sms"}, output.Channels)
	assert.NotEmpty(t, output.EscalationID)
	require.Len(t, email.sent, 1)
	assert.Equal(t, "assistant@campus.example.ac.uk", *email.sent[0].Source)
	require.Len(t, sms.published, 1)
	assert.Contains(t, *sms.published[0].Message, "What colour is the moon?")
}

func TestExecuteEscalatesFailedEvaluation(t *testing.T) {
	email := &stubEmailSender{}
	h := NewHandler(testConfig(), email, &stubSMSPublisher{}, logger.NewTestLogger(t))

	input := lowConfidenceInput()
	input.Answer.Confidence = 0.6

	output, err := h.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, output.Escalated)
	assert.Equal(t, "evaluation_failed", output.Reason)
}

func TestExecuteSkipsConfidentAnswer(t *testing.T) {
	email := &stubEmailSender{}
	sms := &stubSMSPublisher{}
	h := NewHandler(testConfig(), email, sms, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), confidentInput())

	require.NoError(t, err)
	assert.False(t, output.Escalated)
	assert.Empty(t, output.Channels)
	assert.Empty(t, email.sent)
	assert.Empty(t, sms.published)
}

func TestExecuteDisabledChannelsAreSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.SMSEnabled = false
	sms := &stubSMSPublisher{}
	h := NewHandler(cfg, &stubEmailSender{}, sms, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), lowConfidenceInput())

	require.NoError(t, err)
	assert.Equal(t, []string{"email"}, output.Channels)
	assert.Empty(t, sms.published)
}

func TestExecuteEmailFailureIsRetryable(t *testing.T) {
	email := &stubEmailSender{err: errors.New("throttled")}
	h := NewHandler(testConfig(), email, &stubSMSPublisher{}, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), lowConfidenceInput())

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrNotificationSendFailed)
}
