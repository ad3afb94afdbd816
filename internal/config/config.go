// Package config loads service settings from defaults, an optional YAML file and the environment,
// in that order of precedence (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

type Config struct {
	ServiceName string        `yaml:"service_name"`
	Env         string        `yaml:"env"`
	HTTPAddr    string        `yaml:"http_addr"`
	LogLevel    string        `yaml:"log_level"`
	Shutdown    time.Duration `yaml:"shutdown_timeout"`
	SeedDemo    bool          `yaml:"seed_demo"`
	DB          DBConfig      `yaml:"db"`
	Tracing     TracingConfig `yaml:"tracing"`
}

type DBConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	LogLevel string `yaml:"log_level"`
}

type TracingConfig struct {
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
}

func Default() Config {
	return Config{
		ServiceName: "minishop-checkout",
		Env:         "dev",
		HTTPAddr:    ":8080",
		LogLevel:    "info",
		Shutdown:    5 * time.Second,
		DB: DBConfig{
			Driver:   DriverSQLite,
			DSN:      "file:minishop.db?_foreign_keys=on",
			LogLevel: "warn",
		},
		Tracing: TracingConfig{Exporter: ExporterNone},
	}
}

// Load reads CONFIG_FILE when set, then applies environment overrides and validates the result.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path, ok := lookup("CONFIG_FILE"); ok && path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("SERVICE_NAME", &cfg.ServiceName)
	str("ENV", &cfg.Env)
	str("HTTP_ADDR", &cfg.HTTPAddr)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("DB_DRIVER", &cfg.DB.Driver)
	str("DB_DSN", &cfg.DB.DSN)
	str("DB_LOG_LEVEL", &cfg.DB.LogLevel)
	str("OTEL_TRACES_EXPORTER", &cfg.Tracing.Exporter)
	str("OTEL_EXPORTER_OTLP_ENDPOINT", &cfg.Tracing.Endpoint)

	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.Shutdown = d
	}
	if v, ok := lookup("SEED_DEMO"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: SEED_DEMO: %w", err)
		}
		cfg.SeedDemo = b
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service_name is required"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if c.Shutdown <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}
	switch c.DB.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if c.DB.DSN == "" {
			errs = append(errs, fmt.Errorf("db.dsn is required for driver %s", c.DB.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("db.driver %q is not one of sqlite, postgres, memory", c.DB.Driver))
	}
	switch c.Tracing.Exporter {
	case ExporterNone, ExporterStdout, ExporterOTLP:
	default:
		errs = append(errs, fmt.Errorf("tracing.exporter %q is not one of none, stdout, otlp", c.Tracing.Exporter))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
