// internal/workers/knowledge/search-documents/config.go
package searchdocuments

import "time"

type Config struct {
	Timeout time.Duration
	Index   string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		Index:   "campus-documents",
	}
}
