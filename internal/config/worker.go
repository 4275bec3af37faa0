package config

import "runtime"

// WorkerConfig holds settings for batch execution.
type WorkerConfig struct {
	// Count is the number of worker goroutines.
	Count int `yaml:"count" env:"MOVETX_WORKERS"`

	// BufferSize is the capacity of the work and result channels.
	BufferSize int `yaml:"buffer_size" env:"MOVETX_WORKER_BUFFER"`
}

// NewWorkerConfig creates a WorkerConfig with default values.
func NewWorkerConfig() *WorkerConfig {
	n := runtime.NumCPU()
	return &WorkerConfig{
		Count:      n,
		BufferSize: n * 2,
	}
}
