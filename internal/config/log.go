package config

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// LogConfig holds settings related to logging.
type LogConfig struct {
	// Level is a logrus level name (trace, debug, info, warn, error).
	Level string `yaml:"level" env:"MOVETX_LOG_LEVEL"`

	// Format selects the formatter: text or json.
	Format string `yaml:"format" env:"MOVETX_LOG_FORMAT"`
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Format: LogFormatText,
	}
}
