// internal/workers/assistant/escalate-unanswered/models.go
package escalateunanswered

import (
	"campus-assistant/internal/eval"
	"campus-assistant/internal/models"
)

type Input struct {
	Processed  models.ProcessorOutput `json:"processed"`
	Answer     models.AnswerResult    `json:"answer"`
	Evaluation eval.Evaluation        `json:"evaluation"`
}

type Output struct {
	Escalated    bool     `json:"escalated"`
	EscalationID string   `json:"escalationId,omitempty"`
	Channels     []string `json:"channels"`
	Reason       string   `json:"reason,omitempty"`
}
