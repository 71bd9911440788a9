// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package config

import (
	"strings"
	"testing"
)

// validConfig returns a config that passes Validate; tests break one field
// at a time.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = strings.Repeat("a", 32)
	cfg.Security.RefreshSecret = strings.Repeat("b", 32)
	return cfg
}

func TestValidateAcceptsDefaultsWithSecrets(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "port too low",
			mutate: func(c *Config) { c.Server.Port = 0 },
			want:   "server.port",
		},
		{
			name:   "port too high",
			mutate: func(c *Config) { c.Server.Port = 70000 },
			want:   "server.port",
		},
		{
			name:   "short jwt secret",
			mutate: func(c *Config) { c.Security.JWTSecret = "short" },
			want:   "jwt_secret",
		},
		{
			name:   "short refresh secret",
			mutate: func(c *Config) { c.Security.RefreshSecret = "short" },
			want:   "refresh_secret",
		},
		{
			name: "identical secrets",
			mutate: func(c *Config) {
				c.Security.RefreshSecret = c.Security.JWTSecret
			},
			want: "must differ",
		},
		{
			name:   "non-positive access ttl",
			mutate: func(c *Config) { c.Security.AccessTokenTTL = 0 },
			want:   "access_token_ttl",
		},
		{
			name:   "non-positive refresh ttl",
			mutate: func(c *Config) { c.Security.RefreshTokenTTL = 0 },
			want:   "refresh_token_ttl",
		},
		{
			name:   "bcrypt cost out of range",
			mutate: func(c *Config) { c.Security.BcryptCost = 99 },
			want:   "bcrypt_cost",
		},
		{
			name:   "zero default page size",
			mutate: func(c *Config) { c.API.DefaultPageSize = 0 },
			want:   "default_page_size",
		},
		{
			name: "max page size below default",
			mutate: func(c *Config) {
				c.API.DefaultPageSize = 50
				c.API.MaxPageSize = 10
			},
			want: "max_page_size",
		},
		{
			name: "missing database path",
			mutate: func(c *Config) {
				c.Database.Path = ""
				c.Database.InMemory = false
			},
			want: "database.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate returned nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateInMemoryNeedsNoPath(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Path = ""
	cfg.Database.InMemory = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"JWT_SECRET", "security.jwt_secret"},
		{"REFRESH_SECRET", "security.refresh_secret"},
		{"HTTP_PORT", "server.port"},
		{"BADGER_PATH", "database.path"},
		{"LOG_LEVEL", "logging.level"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("x", 32))
	t.Setenv("REFRESH_SECRET", strings.Repeat("y", 32))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("BADGER_IN_MEMORY", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if !cfg.Database.InMemory {
		t.Error("InMemory = false, want true")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != 2 ||
		cfg.Security.CORSOrigins[0] != want[0] ||
		cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}
