// Package config defines all configuration structures for the measurement
// prediction service.  No I/O or parsing logic lives here — only plain data
// types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// FileStoreConfig holds parameters for the JSON file store.
type FileStoreConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig holds PostgreSQL connection parameters for the optional
// database-backed store.
type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsPath  string        `mapstructure:"migrations_path"`
}

// DSN assembles the PostgreSQL connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// StorageConfig selects and parameterises the measurement store backend.
type StorageConfig struct {
	Driver   string          `mapstructure:"driver"` // "file" | "postgres"
	File     FileStoreConfig `mapstructure:"file"`
	Postgres PostgresConfig  `mapstructure:"postgres"`
}

// DatasetConfig holds parameters for the brand reference dataset.
type DatasetConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

// ModelConfig holds parameters for the body-measurement predictor.
type ModelConfig struct {
	ArtifactPath string        `mapstructure:"artifact_path"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// AssistantConfig holds parameters for the FAQ assistant.
type AssistantConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Config is the root configuration structure for the service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Model     ModelConfig     `mapstructure:"model"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	switch c.Storage.Driver {
	case "file":
		if c.Storage.File.Path == "" {
			return fmt.Errorf("config: storage.file.path is required for the file driver")
		}
	case "postgres":
		if c.Storage.Postgres.Host == "" {
			return fmt.Errorf("config: storage.postgres.host is required for the postgres driver")
		}
		if c.Storage.Postgres.Port < 1 || c.Storage.Postgres.Port > 65535 {
			return fmt.Errorf("config: storage.postgres.port %d is out of range [1, 65535]", c.Storage.Postgres.Port)
		}
		if c.Storage.Postgres.User == "" {
			return fmt.Errorf("config: storage.postgres.user is required")
		}
		if c.Storage.Postgres.DBName == "" {
			return fmt.Errorf("config: storage.postgres.db_name is required")
		}
		if c.Storage.Postgres.MaxConns < 1 {
			return fmt.Errorf("config: storage.postgres.max_conns must be ≥ 1, got %d", c.Storage.Postgres.MaxConns)
		}
	default:
		return fmt.Errorf("config: storage.driver %q is invalid; expected file|postgres", c.Storage.Driver)
	}

	if c.Dataset.Path == "" {
		return fmt.Errorf("config: dataset.path is required")
	}
	if c.Model.ArtifactPath == "" {
		return fmt.Errorf("config: model.artifact_path is required")
	}
	if c.Assistant.Enabled && c.Assistant.Model == "" {
		return fmt.Errorf("config: assistant.model is required when the assistant is enabled")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
