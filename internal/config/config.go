package config

import (
	"os"
	"strconv"
	"time"

	"github.com/yvensrabelo/entropia-site-2-sub000/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Webhook  WebhookConfig
	Import   ImportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port      string
	AdminPort string
	GinMode   string
}

// WebhookConfig holds the enrollment webhook settings
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// ImportConfig holds spreadsheet import settings
type ImportConfig struct {
	MaxUploadBytes int64
	// MaxConcurrent bounds simultaneous import jobs across all requests.
	MaxConcurrent int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	config.Server = loadServerConfig()
	config.Webhook = loadWebhookConfig()
	config.Import = loadImportConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	return &DatabaseConfig{
		URL:             url,
		MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(getEnvIntOrDefault("DB_CONN_MAX_LIFETIME_MIN", 30)) * time.Minute,
	}, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:      getEnvOrDefault("PORT", "8080"),
		AdminPort: getEnvOrDefault("ADMIN_PORT", "8081"),
		GinMode:   getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadWebhookConfig() WebhookConfig {
	return WebhookConfig{
		URL:     getEnvOrDefault("MATRICULA_WEBHOOK_URL", "https://webhook.cursoentropia.com/webhook/siteentropiaoficial"),
		Timeout: time.Duration(getEnvIntOrDefault("WEBHOOK_TIMEOUT_SEC", 15)) * time.Second,
	}
}

func loadImportConfig() ImportConfig {
	return ImportConfig{
		MaxUploadBytes: int64(getEnvIntOrDefault("IMPORT_MAX_UPLOAD_MB", 20)) * 1024 * 1024,
		MaxConcurrent:  int64(getEnvIntOrDefault("IMPORT_MAX_CONCURRENT", 1)),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port cannot be empty")
	}
	if config.Server.AdminPort == config.Server.Port {
		return errors.ConfigInvalid("ADMIN_PORT must differ from PORT")
	}
	if config.Webhook.URL == "" {
		return errors.ConfigInvalid("MATRICULA_WEBHOOK_URL cannot be empty")
	}
	if config.Import.MaxConcurrent < 1 {
		return errors.ConfigInvalid("IMPORT_MAX_CONCURRENT must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
