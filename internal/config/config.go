// Package config provides configuration for the move engine.
package config

import (
	"bytes"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/lgbarn/movetx/internal/errors"
)

// Config holds all engine configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	IDs    IDConfig     `yaml:"ids"`
	Engine EngineConfig `yaml:"engine"`
	Worker WorkerConfig `yaml:"worker"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Log:    *NewLogConfig(),
		IDs:    *NewIDConfig(),
		Engine: *NewEngineConfig(),
		Worker: *NewWorkerConfig(),
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and MOVETX_* environment variables, in that order.
func Load(path string) (*Config, error) {
	return LoadWith(path, nil)
}

// LoadWith is Load with a final override, such as command-line flags,
// applied after the environment and before validation.
func LoadWith(path string, override func(*Config)) (*Config, error) {
	cfg := NewConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "read %s: %v", path, err)
		}
		if err := cfg.Decode(data); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays YAML data onto cfg. Keys absent from data keep their
// current values; unknown keys are rejected.
func (c *Config) Decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "decode yaml: %v", err)
	}
	return nil
}

// ApplyEnv overlays MOVETX_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "parse env: %v", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Wrapf(errors.ErrInvalidConfig, format, args...)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return invalid("log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return invalid("log format %q", c.Log.Format)
	}

	switch c.IDs.Scheme {
	case IDSchemeCounter, IDSchemeUUID:
	default:
		return invalid("id scheme %q", c.IDs.Scheme)
	}

	if c.Engine.CheckTimeout < 0 {
		return invalid("check timeout %s is negative", c.Engine.CheckTimeout)
	}
	if c.Worker.Count < 1 {
		return invalid("worker count %d", c.Worker.Count)
	}
	if c.Worker.BufferSize < 1 {
		return invalid("worker buffer size %d", c.Worker.BufferSize)
	}
	return nil
}
