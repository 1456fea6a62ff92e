// internal/workers/assistant/answer-question/models.go
package answerquestion

import "campus-assistant/internal/models"

type Input struct {
	Processed models.ProcessorOutput `json:"processed"`
}

type Output struct {
	Answer models.AnswerResult `json:"answer"`
}
