// Package config loads the dsmeta configuration from an optional YAML file and DSMETA_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/spf13/viper"
)

// Store kinds understood by StoreConfig.Kind.
const (
	StoreKindMemory = "memory"
	StoreKindFile   = "file"
	StoreKindSQL    = "sql"
)

// LogConfig is the configuration for the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn or error
	Format string `mapstructure:"format" yaml:"format"` // json or console
}

// FileStoreConfig is the configuration for the directory-backed store.
type FileStoreConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`       // The directory holding one document per dataset
	Format string `mapstructure:"format" yaml:"format"` // yaml or toml
}

// SQLStoreConfig is the configuration for the database-backed store.
//
// WARNING: DSN may contain credentials and should not be logged.
type SQLStoreConfig struct {
	Driver          string        `mapstructure:"driver" yaml:"driver"`                     // postgres or ramsql
	DSN             string        `mapstructure:"dsn" yaml:"dsn"`                           // Secret: connection string
	ConnectAttempts uint          `mapstructure:"connect_attempts" yaml:"connect_attempts"` // Pings tried before giving up
	ConnectDelay    time.Duration `mapstructure:"connect_delay" yaml:"connect_delay"`       // Delay between pings
}

// StoreConfig selects and configures the metadata backend.
type StoreConfig struct {
	Kind string          `mapstructure:"kind" yaml:"kind"`
	File FileStoreConfig `mapstructure:"file" yaml:"file"`
	SQL  SQLStoreConfig  `mapstructure:"sql" yaml:"sql"`
}

// Config wraps the entire configuration for dsmeta.
type Config struct {
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	Store StoreConfig `mapstructure:"store" yaml:"store"`
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case StoreKindMemory:
	case StoreKindFile:
		if c.Store.File.Dir == "" {
			return errors.New("store.file.dir is required for the file store")
		}
	case StoreKindSQL:
		if c.Store.SQL.DSN == "" {
			return errors.New("store.sql.dsn is required for the sql store")
		}
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}

	return nil
}

// Load loads the config from the file path, falling back to env vars and defaults if the path is
// empty or the file does not exist. Env vars that are set override values loaded from the file.
func Load(filePath string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	if filePath != "" {
		v.SetConfigFile(filePath)

		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", filePath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := bindEnvs(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment variables: %w", err)
	}

	return v, nil
}

var (
	defaults = map[string]any{
		"log.level":                  "info",
		"log.format":                 "json",
		"store.kind":                 StoreKindMemory,
		"store.file.format":          "yaml",
		"store.sql.driver":           "postgres",
		"store.sql.connect_attempts": 5,
		"store.sql.connect_delay":    "1s",
	}

	// envBindings maps a config key to the environment variables that can provide its value.
	// The first element is the preferred name; later ones are accepted for compatibility.
	envBindings = map[string][]string{
		"log.level":                  {"DSMETA_LOG_LEVEL", "LOG_LEVEL"},
		"log.format":                 {"DSMETA_LOG_FORMAT", "LOG_FORMAT"},
		"store.kind":                 {"DSMETA_STORE_KIND"},
		"store.file.dir":             {"DSMETA_STORE_FILE_DIR"},
		"store.file.format":          {"DSMETA_STORE_FILE_FORMAT"},
		"store.sql.driver":           {"DSMETA_STORE_SQL_DRIVER"},
		"store.sql.dsn":              {"DSMETA_STORE_SQL_DSN", "DATABASE_URL"},
		"store.sql.connect_attempts": {"DSMETA_STORE_SQL_CONNECT_ATTEMPTS"},
		"store.sql.connect_delay":    {"DSMETA_STORE_SQL_CONNECT_DELAY"},
	}
)

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}
