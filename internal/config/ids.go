package config

// ID schemes.
const (
	IDSchemeCounter = "counter"
	IDSchemeUUID    = "uuid"
)

// IDConfig holds settings for event identifiers.
type IDConfig struct {
	// Scheme selects sequential counter ids or random UUIDs.
	Scheme string `yaml:"scheme" env:"MOVETX_ID_SCHEME"`

	// Prefix is prepended to every id.
	Prefix string `yaml:"prefix" env:"MOVETX_ID_PREFIX"`
}

// NewIDConfig creates an IDConfig with default values.
func NewIDConfig() *IDConfig {
	return &IDConfig{
		Scheme: IDSchemeCounter,
		Prefix: "move",
	}
}
