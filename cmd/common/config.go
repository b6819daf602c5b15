// Package common provides shared configuration loading for the experiment
// server binaries. Precedence is flags over environment over config file
// over defaults; the binaries apply flag overrides themselves.
package common

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config contains the server's operational settings.
type Config struct {
	// HTTPAddr is the API listen address.
	HTTPAddr string `yaml:"http_addr" env:"EXPERIMENT_HTTP_ADDR"`

	// MetricsAddr is the metrics listen address; empty disables metrics.
	MetricsAddr string `yaml:"metrics_addr" env:"EXPERIMENT_METRICS_ADDR"`

	// EnablePprof mounts the pprof debugging API under /debug.
	EnablePprof bool `yaml:"enable_pprof" env:"EXPERIMENT_ENABLE_PPROF"`

	// LogJSON switches the logger to JSON output.
	LogJSON bool `yaml:"log_json" env:"EXPERIMENT_LOG_JSON"`

	// LogDebug lowers the log level to debug, which also surfaces
	// swallowed notification failures.
	LogDebug bool `yaml:"log_debug" env:"EXPERIMENT_LOG_DEBUG"`

	// MaxConcurrent bounds concurrent request handling.
	MaxConcurrent int `yaml:"max_concurrent" env:"EXPERIMENT_MAX_CONCURRENT"`

	// NotifyTimeout is the per-request timeout for outbound notifications.
	NotifyTimeout time.Duration `yaml:"notify_timeout" env:"EXPERIMENT_NOTIFY_TIMEOUT"`

	DrainDuration            time.Duration `yaml:"drain_duration" env:"EXPERIMENT_DRAIN_DURATION"`
	GracefulShutdownDuration time.Duration `yaml:"graceful_shutdown_duration" env:"EXPERIMENT_GRACEFUL_SHUTDOWN_DURATION"`
	ReadTimeout              time.Duration `yaml:"read_timeout" env:"EXPERIMENT_READ_TIMEOUT"`
	WriteTimeout             time.Duration `yaml:"write_timeout" env:"EXPERIMENT_WRITE_TIMEOUT"`
}

// DefaultConfig returns a config suitable for local runs.
func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:                 ":8080",
		MaxConcurrent:            4,
		NotifyTimeout:            5 * time.Second,
		DrainDuration:            5 * time.Second,
		GracefulShutdownDuration: 10 * time.Second,
		ReadTimeout:              15 * time.Second,
		WriteTimeout:             15 * time.Second,
	}
}

// LoadConfig reads a YAML config file on top of the defaults, then applies
// EXPERIMENT_* environment overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// Logger builds the process logger from the config's output settings.
func (c *Config) Logger() *slog.Logger {
	level := slog.LevelInfo
	if c.LogDebug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogJSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
