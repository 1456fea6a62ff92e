// internal/workers/knowledge/search-documents/models.go
package searchdocuments

type Input struct {
	Query string   `json:"query"`
	Index string   `json:"index,omitempty"`
	Tags  []string `json:"tags,omitempty"`
	From  int      `json:"from,omitempty"`
	Size  int      `json:"size,omitempty"`
}

type Output struct {
	Documents []map[string]interface{} `json:"documents"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"` // milliseconds
}
