// internal/workers/assistant/escalate-unanswered/config.go
package escalateunanswered

import "time"

type Config struct {
	Timeout             time.Duration
	ConfidenceThreshold float64

	EmailEnabled bool
	FromEmail    string
	ToEmail      string

	SMSEnabled  bool
	PhoneNumber string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:             15 * time.Second,
		ConfidenceThreshold: 0.3,
	}
}
