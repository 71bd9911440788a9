// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

// Package config provides layered application configuration via Koanf v2.
// Precedence, highest wins: environment variables > config file > defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Taskforge server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds BadgerDB settings.
type DatabaseConfig struct {
	// Path is the directory for the Badger value log and LSM tree.
	Path string `koanf:"path"`

	// InMemory runs the store without disk persistence. Used by tests.
	InMemory bool `koanf:"in_memory"`
}

// SecurityConfig holds authentication and request-hardening settings.
type SecurityConfig struct {
	// JWTSecret signs short-lived access tokens. Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// RefreshSecret signs long-lived refresh tokens. Must differ from
	// JWTSecret so a leaked access key cannot forge refresh tokens.
	RefreshSecret string `koanf:"refresh_secret"`

	AccessTokenTTL  time.Duration `koanf:"access_token_ttl"`
	RefreshTokenTTL time.Duration `koanf:"refresh_token_ttl"`

	BcryptCost int `koanf:"bcrypt_cost"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitAuthReqs int           `koanf:"rate_limit_auth_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// APIConfig holds pagination bounds for list endpoints.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would make the server
// unsafe or inoperable. Called once at startup before serving.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters (set JWT_SECRET)")
	}
	if len(c.Security.RefreshSecret) < 32 {
		return fmt.Errorf("security.refresh_secret must be at least 32 characters (set REFRESH_SECRET)")
	}
	if c.Security.JWTSecret == c.Security.RefreshSecret {
		return fmt.Errorf("security.jwt_secret and security.refresh_secret must differ")
	}
	if c.Security.AccessTokenTTL <= 0 {
		return fmt.Errorf("security.access_token_ttl must be positive")
	}
	if c.Security.RefreshTokenTTL <= 0 {
		return fmt.Errorf("security.refresh_token_ttl must be positive")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be between 4 and 31, got %d", c.Security.BcryptCost)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be at least 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must not be below api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if !c.Database.InMemory && c.Database.Path == "" {
		return fmt.Errorf("database.path is required unless database.in_memory is set")
	}
	return nil
}
