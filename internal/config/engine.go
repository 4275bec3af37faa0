package config

import "time"

// EngineConfig holds settings for the move pipeline.
type EngineConfig struct {
	// CheckTimeout bounds the identity and bounds checks made while building
	// and validating a move. Zero means no deadline.
	CheckTimeout time.Duration `yaml:"check_timeout" env:"MOVETX_CHECK_TIMEOUT"`

	// VerifyRollback compares the board with its pre-transaction snapshot
	// after every rollback.
	VerifyRollback bool `yaml:"verify_rollback" env:"MOVETX_VERIFY_ROLLBACK"`
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		CheckTimeout: 2 * time.Second,
	}
}
