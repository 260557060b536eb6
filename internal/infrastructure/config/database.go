package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const redactedSecret = "****"

// DatabaseConfig selects where imported catalogs are persisted. Postgres is
// reached through URL when set, otherwise through the discrete fields.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	URL  string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Path is the sqlite file; empty means an in-memory database.
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`
}

type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN returns the driver connection string for the configured type.
func (c DatabaseConfig) DSN() string {
	if c.Type == "sqlite" {
		if c.Path == "" {
			return ":memory:"
		}
		return c.Path
	}
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// InMemory reports whether every connection would open its own empty sqlite database.
func (c DatabaseConfig) InMemory() bool {
	if c.Type != "sqlite" {
		return false
	}
	return c.Path == "" || c.Path == ":memory:" || strings.Contains(c.Path, "mode=memory")
}

// Redacted returns a copy safe to print: passwords in the URL and the
// password field are replaced.
func (c DatabaseConfig) Redacted() DatabaseConfig {
	out := c
	out.URL = redactURL(c.URL)
	if out.Password != "" {
		out.Password = redactedSecret
	}
	return out
}

func redactURL(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, set := u.User.Password(); !set {
		return raw
	}
	// url.UserPassword would escape the mask, so swap Redacted's placeholder instead.
	return strings.Replace(u.Redacted(), ":xxxxx@", ":"+redactedSecret+"@", 1)
}
