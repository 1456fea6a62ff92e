// internal/workers/assistant/evaluate-answer/models.go
package evaluateanswer

import (
	"campus-assistant/internal/eval"
	"campus-assistant/internal/models"
)

type Input struct {
	Processed models.ProcessorOutput `json:"processed"`
	Answer    models.AnswerResult    `json:"answer"`
}

type Output struct {
	Evaluation eval.Evaluation `json:"evaluation"`
}
