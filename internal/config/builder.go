package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithLogLevel sets the log level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithJSONLogs switches the log formatter to JSON.
func (b *ConfigBuilder) WithJSONLogs(enabled bool) *ConfigBuilder {
	if enabled {
		b.cfg.Log.Format = LogFormatJSON
	} else {
		b.cfg.Log.Format = LogFormatText
	}
	return b
}

// WithIDScheme sets the id scheme and prefix.
func (b *ConfigBuilder) WithIDScheme(scheme, prefix string) *ConfigBuilder {
	b.cfg.IDs.Scheme = scheme
	b.cfg.IDs.Prefix = prefix
	return b
}

// WithCheckTimeout sets the collaborator deadline.
func (b *ConfigBuilder) WithCheckTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.CheckTimeout = d
	return b
}

// WithRollbackVerification enables post-rollback snapshot comparison.
func (b *ConfigBuilder) WithRollbackVerification(enabled bool) *ConfigBuilder {
	b.cfg.Engine.VerifyRollback = enabled
	return b
}

// WithWorkers sets the worker count and channel buffer size.
func (b *ConfigBuilder) WithWorkers(count, buffer int) *ConfigBuilder {
	b.cfg.Worker.Count = count
	b.cfg.Worker.BufferSize = buffer
	return b
}
