package config

import "time"

// Default value constants.
const (
	DefaultServerPort = 5000
	DefaultServerMode = "debug"

	DefaultStorageDriver    = "file"
	DefaultMeasurementsFile = "measurements.json"

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "swakarthi"
	DefaultDBSSLMode  = "disable"
	DefaultDBMaxConns = 10

	DefaultDatasetPath = "Copy of brandsize(1).csv"

	DefaultModelArtifact = "swakriti_body_predictor.json"
	DefaultModelTimeout  = 5 * time.Second

	DefaultAssistantModel = "gemini-2.5-flash"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "swakarthi"
)

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.  It must be called after unmarshalling and
// before Validate() so that optional-but-defaulted fields are never seen as
// missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DefaultStorageDriver
	}
	if cfg.Storage.File.Path == "" {
		cfg.Storage.File.Path = DefaultMeasurementsFile
	}
	if cfg.Storage.Postgres.Host == "" {
		cfg.Storage.Postgres.Host = DefaultDBHost
	}
	if cfg.Storage.Postgres.Port == 0 {
		cfg.Storage.Postgres.Port = DefaultDBPort
	}
	if cfg.Storage.Postgres.DBName == "" {
		cfg.Storage.Postgres.DBName = DefaultDBName
	}
	if cfg.Storage.Postgres.SSLMode == "" {
		cfg.Storage.Postgres.SSLMode = DefaultDBSSLMode
	}
	if cfg.Storage.Postgres.MaxConns == 0 {
		cfg.Storage.Postgres.MaxConns = DefaultDBMaxConns
	}
	if cfg.Storage.Postgres.ConnMaxLifetime == 0 {
		cfg.Storage.Postgres.ConnMaxLifetime = 30 * time.Minute
	}

	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = DefaultDatasetPath
	}

	if cfg.Model.ArtifactPath == "" {
		cfg.Model.ArtifactPath = DefaultModelArtifact
	}
	if cfg.Model.Timeout == 0 {
		cfg.Model.Timeout = DefaultModelTimeout
	}

	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = DefaultAssistantModel
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// NewDefaultConfig returns a Config populated entirely from defaults.
// Useful for tests and for running the server without a config file.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
