package config

import "time"

// LoggingConfig picks the slog handler and where it writes.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`
}

// MetricsConfig toggles the prometheus collectors served by the daemon.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// PollInterval is how often the catalog gauges are recomputed.
	PollInterval time.Duration `mapstructure:"poll_interval"`
}
