// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/olegiv/ocms-modmenu/internal/metrics"
	"github.com/olegiv/ocms-modmenu/internal/store"
)

// HideRuleStore reads and writes stored hide settings.
type HideRuleStore interface {
	HideRules(ctx context.Context, userID int64) (store.HideRuleSettings, error)
	SaveHideRules(ctx context.Context, userID int64, settings store.HideRuleSettings) error
}

// HideRuleCache serves hide settings from a cache and falls back to the
// wrapped store. Saving through it invalidates the user's cached entry.
// Cache failures are logged and never fail a request.
type HideRuleCache struct {
	store    HideRuleStore
	cache    Cache
	logger   *slog.Logger
	recorder metrics.Recorder

	// saves counts SaveHideRules calls per user in this process.
	saves sync.Map // int64 -> *atomic.Uint64
}

// NewHideRuleCache wraps s with c.
func NewHideRuleCache(s HideRuleStore, c Cache, logger *slog.Logger) *HideRuleCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &HideRuleCache{store: s, cache: c, logger: logger, recorder: metrics.NoopRecorder{}}
}

// SetRecorder sets the metrics recorder. A nil recorder disables metrics.
func (h *HideRuleCache) SetRecorder(r metrics.Recorder) {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	h.recorder = r
}

func hideRulesKey(userID int64) string {
	return "hide_rules:" + strconv.FormatInt(userID, 10)
}

func (h *HideRuleCache) saveCount(userID int64) *atomic.Uint64 {
	v, _ := h.saves.LoadOrStore(userID, new(atomic.Uint64))
	return v.(*atomic.Uint64)
}

// HideRules returns the settings of userID.
func (h *HideRuleCache) HideRules(ctx context.Context, userID int64) (store.HideRuleSettings, error) {
	key := hideRulesKey(userID)
	saves := h.saveCount(userID)
	before := saves.Load()

	data, err := h.cache.Get(ctx, key)
	switch {
	case err == nil:
		var settings store.HideRuleSettings
		if jsonErr := json.Unmarshal(data, &settings); jsonErr == nil {
			h.recorder.IncCacheLookup(metrics.CacheHit)
			return settings, nil
		}
		h.recorder.IncCacheLookup(metrics.CacheError)
		h.logger.Warn("discarding undecodable cached hide rules", "user_id", userID)
	case errors.Is(err, ErrCacheMiss):
		h.recorder.IncCacheLookup(metrics.CacheMiss)
	default:
		h.recorder.IncCacheLookup(metrics.CacheError)
		h.logger.Warn("hide rule cache read failed", "user_id", userID, "error", err)
	}

	settings, err := h.store.HideRules(ctx, userID)
	if err != nil {
		return store.HideRuleSettings{}, err
	}

	if data, err := json.Marshal(settings); err == nil {
		if err := h.cache.Set(ctx, key, data, 0); err != nil {
			h.logger.Warn("hide rule cache write failed", "user_id", userID, "error", err)
		}
		// A save that ran during the load may already have invalidated the
		// key; the value just written would then be stale.
		if saves.Load() != before {
			_ = h.cache.Delete(ctx, key)
		}
	}
	return settings, nil
}

// SaveHideRules stores settings and drops the cached copy.
func (h *HideRuleCache) SaveHideRules(ctx context.Context, userID int64, settings store.HideRuleSettings) error {
	if err := h.store.SaveHideRules(ctx, userID, settings); err != nil {
		h.recorder.IncHideRuleSave(false)
		return err
	}
	h.recorder.IncHideRuleSave(true)
	h.saveCount(userID).Add(1)
	if err := h.cache.Delete(ctx, hideRulesKey(userID)); err != nil {
		h.logger.Warn("hide rule cache invalidation failed", "user_id", userID, "error", err)
	}
	return nil
}

// Backend names the cache implementation in use.
func (h *HideRuleCache) Backend() string {
	switch h.cache.(type) {
	case *RedisCache:
		return "redis"
	case *MemoryCache:
		return "memory"
	default:
		return "custom"
	}
}

// Stats returns the statistics of the underlying cache.
func (h *HideRuleCache) Stats() Stats {
	return h.cache.Stats()
}

// HealthCheck pings the underlying cache.
func (h *HideRuleCache) HealthCheck(ctx context.Context) error {
	return h.cache.Ping(ctx)
}

// Clear drops every cached entry. Stored settings are untouched.
func (h *HideRuleCache) Clear(ctx context.Context) error {
	return h.cache.Clear(ctx)
}
