package config

import (
	"fmt"
	"os"
	"time"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type DeepSeekConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type GoogleSearchConfig struct {
	APIKey         string
	SearchEngineID string
}

// Configured reports whether live web search credentials are present.
func (g GoogleSearchConfig) Configured() bool {
	return g.APIKey != "" && g.SearchEngineID != ""
}

type Config struct {
	ServerPort  string
	MetricsPort string
	PprofPort   string
	Debug       bool

	Postgres PostgresConfig
	DeepSeek DeepSeekConfig
	Google   GoogleSearchConfig

	// PlanTimeout bounds a plan request end to end. The default depends
	// on whether the server enriches prompts with web search first:
	// generation alone fits in 60s, search plus generation needs 120s.
	PlanTimeout   time.Duration
	SearchTimeout time.Duration

	// HistoryEnabled is derived: plan history needs Postgres credentials.
	HistoryEnabled bool
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8091"),
		MetricsPort: getEnvOrDefault("METRICS_PORT", "9092"),
		PprofPort:   getEnvOrDefault("PPROF_PORT", "6060"),
		Debug:       os.Getenv("DEBUG") == "true",
		Postgres: PostgresConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			DB:       getEnvOrDefault("POSTGRES_DB", "travelplanner"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
			MaxConns: 30,
			MinConns: 5,
		},
		DeepSeek: DeepSeekConfig{
			APIKey:  os.Getenv("DEEPSEEK_API_KEY"),
			BaseURL: getEnvOrDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
			Model:   getEnvOrDefault("DEEPSEEK_MODEL", "deepseek-chat"),
		},
		Google: GoogleSearchConfig{
			APIKey:         os.Getenv("GOOGLE_API_KEY"),
			SearchEngineID: os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),
		},
	}

	if cfg.DeepSeek.APIKey == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY environment variable is required")
	}

	planDefault := 60 * time.Second
	if cfg.Google.Configured() {
		planDefault = 120 * time.Second
	}
	var err error
	if cfg.PlanTimeout, err = getEnvDuration("PLAN_TIMEOUT", planDefault); err != nil {
		return nil, err
	}
	if cfg.SearchTimeout, err = getEnvDuration("SEARCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	cfg.HistoryEnabled = cfg.Postgres.Password != ""

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 90s: %w", key, err)
	}
	return d, nil
}
