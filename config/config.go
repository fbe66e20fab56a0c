package config

import (
	"log/slog"
	"os"
	"strconv"
)

const (
	DefaultTopic       = "artificial intelligence"
	DefaultMaxArticles = 5
)

type AppConfig struct {
	GNewsAPIKey  string
	OpenAIAPIKey string
	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPPassword string
	Recipient    string
	Topic        string
	MaxArticles  int
	DryRun       bool
	LogLevel     slog.Level
}

func LoadConfig() AppConfig {
	cfg := AppConfig{}

	cfg.GNewsAPIKey = loadRequired("GNEWS_API_KEY")
	cfg.OpenAIAPIKey = loadRequired("OPENAI_API_KEY")
	cfg.SMTPFrom = loadRequired("SMTP_FROM")
	cfg.SMTPPassword = loadRequired("SMTP_PASSWORD")
	cfg.Recipient = loadRequired("RECIPIENT_EMAIL")

	cfg.SMTPHost = loadOptional("SMTP_HOST", "smtp.gmail.com")
	cfg.SMTPPort = loadOptionalInt("SMTP_PORT", 465)
	cfg.Topic = loadOptional("NEWS_TOPIC", DefaultTopic)
	cfg.MaxArticles = loadOptionalInt("MAX_ARTICLES", DefaultMaxArticles)
	cfg.DryRun = loadOptionalBool("DRY_RUN", false)

	lvlString := loadOptional("LOG_LEVEL", "INFO")
	var err error
	cfg.LogLevel, err = parseLogLevel(lvlString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	return cfg
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Required env var not set", "key", key)
		os.Exit(1)
	}
	return value
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func loadOptionalInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		slog.Error("Invalid value for env var, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return n
}

func loadOptionalBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Error("Invalid value for env var, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return b
}
