// internal/workers/assistant/process-question/models.go
package processquestion

import "campus-assistant/internal/models"

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	Processed models.ProcessorOutput `json:"processed"`
}
