package config

import "time"

// PlannerConfig holds defaults applied to chain and plan requests
type PlannerConfig struct {
	// MaxDepth bounds expansion when a request does not set one. Unset means unlimited.
	MaxDepth *int `mapstructure:"max_depth" validate:"omitempty,min=0"`

	// RatioMode used when a plan request leaves it empty: fractional or whole
	RatioMode string `mapstructure:"ratio_mode" validate:"required,oneof=fractional whole"`

	// MaxScaleFactor is the largest multiplier tried in whole mode
	MaxScaleFactor int `mapstructure:"max_scale_factor" validate:"min=1,max=1000"`

	// CacheSize is the number of memoized plans; 0 disables the cache
	CacheSize int `mapstructure:"cache_size" validate:"min=0"`

	// CacheTTL bounds how long a memoized plan is served
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// DefaultMaxDepth returns the configured depth bound, or nil when unlimited
func (p PlannerConfig) DefaultMaxDepth() *int {
	if p.MaxDepth == nil {
		return nil
	}
	depth := *p.MaxDepth
	return &depth
}
