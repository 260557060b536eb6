package config

import "time"

// ServerConfig holds daemon listener configuration
type ServerConfig struct {
	// HTTPAddress serves the REST API, health and metrics endpoints
	HTTPAddress string `mapstructure:"http_address" validate:"required"`

	// GRPCAddress serves the Planner gRPC service
	GRPCAddress string `mapstructure:"grpc_address" validate:"required"`

	// RateLimit is the sustained request rate per second; 0 disables limiting
	RateLimit float64 `mapstructure:"rate_limit" validate:"min=0"`

	// Burst is the token bucket size
	Burst int `mapstructure:"burst" validate:"min=0"`

	// Maximum time to wait for in-flight requests during shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// PIDFile enforces a single daemon instance; empty disables it
	PIDFile string `mapstructure:"pid_file"`
}
