package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" && cfg.Database.Type == "sqlite" {
		cfg.Database.Path = "craftchain.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "craftchain"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "craftchain"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Catalog defaults
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = CatalogSourceFile
	}
	if cfg.Catalog.Path == "" && cfg.Catalog.Source == CatalogSourceFile {
		cfg.Catalog.Path = "data/recipes.json"
	}

	// Planner defaults
	if cfg.Planner.RatioMode == "" {
		cfg.Planner.RatioMode = "fractional"
	}
	if cfg.Planner.MaxScaleFactor == 0 {
		cfg.Planner.MaxScaleFactor = 20
	}
	if cfg.Planner.CacheSize == 0 {
		cfg.Planner.CacheSize = 256
	}
	if cfg.Planner.CacheTTL == 0 {
		cfg.Planner.CacheTTL = 10 * time.Minute
	}

	// Server defaults
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8080"
	}
	if cfg.Server.GRPCAddress == "" {
		cfg.Server.GRPCAddress = "localhost:50061"
	}
	if cfg.Server.Burst == 0 {
		cfg.Server.Burst = 20
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}

	// Metrics defaults
	if cfg.Metrics.PollInterval == 0 {
		cfg.Metrics.PollInterval = 60 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}
