// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/ocms-modmenu/internal/cache"
	"github.com/olegiv/ocms-modmenu/internal/logging"
	"github.com/olegiv/ocms-modmenu/internal/store"
)

// Cache routes
const (
	RouteCache      = "/admin/cache"
	RouteCacheClear = "/admin/cache/clear"
)

// CacheManager exposes the hide rule cache for administration.
type CacheManager interface {
	Backend() string
	Stats() cache.Stats
	HealthCheck(ctx context.Context) error
	Clear(ctx context.Context) error
}

// CacheHandler handles cache management routes.
type CacheHandler struct {
	cache  CacheManager
	events logging.EventWriter
}

// NewCacheHandler creates a new CacheHandler. events may be nil.
func NewCacheHandler(cm CacheManager, events logging.EventWriter) *CacheHandler {
	return &CacheHandler{cache: cm, events: events}
}

// CacheStatus is the JSON body of GET /admin/cache.
type CacheStatus struct {
	Backend     string      `json:"backend"`
	Stats       cache.Stats `json:"stats"`
	Healthy     bool        `json:"healthy"`
	HealthError string      `json:"healthError,omitempty"`
}

// Stats handles GET /admin/cache.
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Cache system not initialized")
		return
	}

	status := CacheStatus{
		Backend: h.cache.Backend(),
		Stats:   h.cache.Stats(),
		Healthy: true,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.cache.HealthCheck(ctx); err != nil {
		status.Healthy = false
		status.HealthError = err.Error()
	}

	writeJSONSuccess(w, map[string]any{"cache": status})
}

// Clear handles POST /admin/cache/clear.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Cache system not initialized")
		return
	}

	if err := h.cache.Clear(r.Context()); err != nil {
		logAndJSONError(w, "failed to clear cache", "backend", h.cache.Backend(), "error", err)
		return
	}
	slog.Info("cache cleared", "backend", h.cache.Backend(), "remote_addr", r.RemoteAddr)

	if h.events != nil {
		_, _ = h.events.CreateEvent(r.Context(), store.CreateEventParams{
			Level:    logging.EventLevelInfo,
			Category: logging.EventCategoryCache,
			Message:  "Hide rule cache cleared",
		})
	}

	writeJSONSuccess(w, map[string]any{"cleared": true})
}
