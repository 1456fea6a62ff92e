// internal/common/config/loader.go
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	// Load .env file if present. Real environments set variables directly.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ASSISTANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvOverrides(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is acceptable; environment variables must carry it.
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from an explicit path, for tools and tests.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// bindEnvOverrides maps secrets and deployment-specific values that should
// never live in the config file.
func bindEnvOverrides(v *viper.Viper) {
	_ = v.BindEnv("camunda.broker_address", "ZEEBE_ADDRESS")
	_ = v.BindEnv("database.postgres.host", "POSTGRES_HOST")
	_ = v.BindEnv("database.postgres.password", "POSTGRES_PASSWORD")
	_ = v.BindEnv("database.redis.address", "REDIS_ADDRESS")
	_ = v.BindEnv("database.redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("database.elasticsearch.password", "ELASTICSEARCH_PASSWORD")
	_ = v.BindEnv("apis.genai.base_url", "GENAI_BASE_URL")
	_ = v.BindEnv("apis.genai.api_key", "GENAI_API_KEY")
	_ = v.BindEnv("escalation.aws.region", "AWS_REGION")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "campus-assistant")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("camunda.broker_address", "localhost:26500")
	v.SetDefault("camunda.max_jobs_active", 32)
	v.SetDefault("camunda.timeout", 30000)
	v.SetDefault("camunda.request_timeout", 10000)

	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.database", "campus_assistant")
	v.SetDefault("database.postgres.user", "assistant")
	v.SetDefault("database.postgres.max_connections", 20)
	v.SetDefault("database.postgres.max_idle", 5)
	v.SetDefault("database.postgres.sslmode", "disable")

	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("database.redis.cache_ttl", 300)

	v.SetDefault("database.elasticsearch.addresses", []string{"http://localhost:9200"})
	v.SetDefault("database.elasticsearch.document_index", "campus-documents")

	v.SetDefault("knowledge.intent_rules_path", "configs/intents.json")
	v.SetDefault("knowledge.gazetteer_path", "configs/gazetteer.json")
	v.SetDefault("knowledge.halls_collection", "configs/halls.json")

	v.SetDefault("apis.genai.timeout", 20000)

	v.SetDefault("escalation.confidence_threshold", 0.3)
	v.SetDefault("escalation.aws.region", "eu-west-2")

	v.SetDefault("observability.jaeger_endpoint", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

func validate(cfg *Config) error {
	if cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Knowledge.IntentRulesPath == "" {
		return fmt.Errorf("knowledge.intent_rules_path is required")
	}
	if cfg.Knowledge.GazetteerPath == "" {
		return fmt.Errorf("knowledge.gazetteer_path is required")
	}
	if cfg.Escalation.ConfidenceThreshold < 0 || cfg.Escalation.ConfidenceThreshold > 1 {
		return fmt.Errorf("escalation.confidence_threshold must be between 0 and 1")
	}
	return nil
}
