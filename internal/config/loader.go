// Package config provides configuration loading, defaults, and validation for
// the measurement prediction service.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all service settings.
const envPrefix = "SWAKARTHI"

// newViper builds a pre-configured Viper instance with the service's standard
// settings: YAML file type, SWAKARTHI_ env prefix, automatic env binding, and
// a key replacer that maps "." → "_" so that nested keys like "storage.driver"
// resolve to "SWAKARTHI_STORAGE_DRIVER".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindKeys(v)
	return v
}

// bindKeys registers every known configuration key with viper.  Without this,
// Unmarshal cannot see values supplied only through environment variables.
func bindKeys(v *viper.Viper) {
	keys := []string{
		"server.port",
		"server.mode",
		"server.read_timeout",
		"server.write_timeout",
		"server.shutdown_timeout",
		"server.allowed_origins",
		"storage.driver",
		"storage.file.path",
		"storage.postgres.host",
		"storage.postgres.port",
		"storage.postgres.user",
		"storage.postgres.password",
		"storage.postgres.db_name",
		"storage.postgres.ssl_mode",
		"storage.postgres.max_conns",
		"storage.postgres.conn_max_lifetime",
		"storage.postgres.migrations_path",
		"dataset.path",
		"dataset.watch",
		"model.artifact_path",
		"model.timeout",
		"assistant.enabled",
		"assistant.api_key",
		"assistant.model",
		"log.level",
		"log.format",
		"log.output_paths",
		"metrics.enabled",
		"metrics.namespace",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// Load reads the YAML file at configPath, merges any SWAKARTHI_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from SWAKARTHI_* environment variables,
// with no config file required.  This is the preferred loading strategy for
// containerised deployments.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  It is intended for
// hot-reloading non-critical settings such as log level; callers are
// responsible for applying only the safe subset of changes at runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// If the changed file fails to parse or validate, onChange is not called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read — errors are ignored here; callers should call Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
