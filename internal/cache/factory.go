// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import "time"

// DefaultPrefix is the Redis key prefix used when none is configured.
const DefaultPrefix = "modmenu:"

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set. Otherwise an in-memory
	// cache is used.
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
}

// New creates the cache described by cfg.
func New(cfg Config) (Cache, error) {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}

	if cfg.RedisURL != "" {
		prefix := cfg.Prefix
		if prefix == "" {
			prefix = DefaultPrefix
		}
		return NewRedisCache(RedisOptions{
			URL:        cfg.RedisURL,
			Prefix:     prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
	}

	return NewMemoryCache(cfg.DefaultTTL, time.Minute), nil
}
