package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/natefinch/atomic"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides. PLAYSTATS_SERVER__PORT maps to server.port.
const EnvPrefix = "PLAYSTATS_"

// Config represents the top-level application config.
type Config struct {
	Server    ServerConfig    `koanf:"server" yaml:"server"`
	Database  DatabaseConfig  `koanf:"database" yaml:"database"`
	Logger    LoggerConfig    `koanf:"logger" yaml:"logger"`
	Ingestion IngestionConfig `koanf:"ingestion" yaml:"ingestion"`
}

type ServerConfig struct {
	Port          int    `koanf:"port" yaml:"port" validate:"min=1,max=65535"`
	Host          string `koanf:"host" yaml:"host" validate:"required"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb" yaml:"max_body_size_mb" validate:"gt=0"`
	Mode          string `koanf:"mode" yaml:"mode" validate:"oneof=debug release"`
}

type DatabaseConfig struct {
	Type string `koanf:"type" yaml:"type" validate:"oneof=sqlite postgres"`
	// DSN is a file path for sqlite and a connection string for postgres.
	DSN          string `koanf:"dsn" yaml:"dsn" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" yaml:"max_open_conns" validate:"gt=0"`
	MaxIdleConns int    `koanf:"max_idle_conns" yaml:"max_idle_conns" validate:"gt=0"`
	AutoMigrate  bool   `koanf:"auto_migrate" yaml:"auto_migrate"`
}

type LoggerConfig struct {
	Level  string `koanf:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" yaml:"format" validate:"oneof=text json logfmt"`
}

type IngestionConfig struct {
	CloseTimeout string `koanf:"close_timeout" yaml:"close_timeout"` // parsed and validated on startup
}

// EffectiveCloseTimeout returns how long shutdown waits for the writer to drain.
func (c IngestionConfig) EffectiveCloseTimeout() time.Duration {
	d, err := time.ParseDuration(c.CloseTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Addr is the listen address of the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultDatabasePath is where the sqlite file lives when nothing else is configured.
func DefaultDatabasePath() string {
	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "playstats", "playstats.db")
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "playstats", "playstats.db")
}

// DefaultConfigPath is the config file looked up when --config is not given.
func DefaultConfigPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "playstats", "config.yaml")
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.port":             8080,
		"server.host":             "127.0.0.1",
		"server.max_body_size_mb": 1,
		"server.mode":             "release",
		"database.type":           "sqlite",
		"database.dsn":            DefaultDatabasePath(),
		"database.max_open_conns": 4,
		"database.max_idle_conns": 4,
		"database.auto_migrate":   true,
		"logger.level":            "info",
		"logger.format":           "text",
		"ingestion.close_timeout": "30s",
	}
}

// Default returns the configuration used when no file or environment override is present.
func Default() *Config {
	cfg, err := build(koanfWithDefaults())
	if err != nil {
		// Defaults are static; failing here is a programming error.
		panic(err)
	}
	return cfg
}

func koanfWithDefaults() *koanf.Koanf {
	k := koanf.New(".")
	for key, value := range defaults() {
		k.Set(key, value)
	}
	return k
}

func build(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) must not exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	timeout, err := time.ParseDuration(c.Ingestion.CloseTimeout)
	if err != nil {
		return fmt.Errorf("invalid ingestion.close_timeout %q: %w", c.Ingestion.CloseTimeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("ingestion.close_timeout must be > 0")
	}

	return nil
}

// Load parses config from defaults, an optional YAML file and PLAYSTATS_ env vars, then validates it.
// A missing file at the default location is not an error; a missing explicit path is.
func Load(configPath string) (*Config, error) {
	k := koanfWithDefaults()

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else if def := DefaultConfigPath(); fileExists(def) {
		if err := k.Load(file.Provider(def), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", def, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	return build(k)
}

// WriteDefault writes the default configuration as YAML to path, atomically.
// An existing file is only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite && fileExists(path) {
		return fmt.Errorf("config file %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	encoder := yamlv3.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(Default()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
