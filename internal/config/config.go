// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// validEnvs lists the accepted OCMS_ENV values.
var validEnvs = []string{"development", "production"}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ModulesFile   string `env:"OCMS_MODULES_FILE" envDefault:"./config/modules.yaml"`
	DBPath        string `env:"OCMS_DB_PATH" envDefault:"./data/ocms.db"`
	ServerHost    string `env:"OCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"OCMS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"OCMS_ENV" envDefault:"development"`
	LogLevel      string `env:"OCMS_LOG_LEVEL" envDefault:"info"`
	AdminLang     string `env:"OCMS_ADMIN_LANG" envDefault:"en"`
	ModuleURLBase string `env:"OCMS_MODULE_URL_BASE" envDefault:"/admin/module"`

	// Hide rule cache. An empty RedisURL selects the in-memory cache.
	RedisURL string        `env:"OCMS_REDIS_URL"`
	CacheTTL time.Duration `env:"OCMS_CACHE_TTL" envDefault:"5m"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("OCMS_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	validEnv := false
	for _, e := range validEnvs {
		if cfg.Env == e {
			validEnv = true
			break
		}
	}
	if !validEnv {
		return nil, fmt.Errorf("OCMS_ENV must be one of %s, got %q", strings.Join(validEnvs, "|"), cfg.Env)
	}

	if !strings.HasPrefix(cfg.ModuleURLBase, "/") {
		return nil, fmt.Errorf("OCMS_MODULE_URL_BASE must start with /, got %q", cfg.ModuleURLBase)
	}

	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("OCMS_CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}

	return cfg, nil
}
