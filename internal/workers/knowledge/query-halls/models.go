// internal/workers/knowledge/query-halls/models.go
package queryhalls

import "campus-assistant/internal/models"

type Input struct {
	Name string   `json:"name,omitempty"`
	Tags []string `json:"tags,omitempty"`
}

type Output struct {
	Halls []models.Hall `json:"halls"`
	Count int           `json:"count"`
}
