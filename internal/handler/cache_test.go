// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/ocms-modmenu/internal/cache"
	"github.com/olegiv/ocms-modmenu/internal/logging"
	"github.com/olegiv/ocms-modmenu/internal/store"
)

type fakeCache struct {
	pingErr  error
	clearErr error
	cleared  int
}

func (f *fakeCache) Backend() string                     { return "redis" }
func (f *fakeCache) Stats() cache.Stats                  { return cache.Stats{Hits: 3, Misses: 1, HitRate: 75} }
func (f *fakeCache) HealthCheck(_ context.Context) error { return f.pingErr }

func (f *fakeCache) Clear(_ context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared++
	return nil
}

type recordedEvents struct {
	created []store.CreateEventParams
}

func (r *recordedEvents) CreateEvent(_ context.Context, arg store.CreateEventParams) (int64, error) {
	r.created = append(r.created, arg)
	return int64(len(r.created)), nil
}

type cacheResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Cleared bool        `json:"cleared"`
	Cache   CacheStatus `json:"cache"`
}

func serveCache(t *testing.T, fn http.HandlerFunc, method, target string) (*httptest.ResponseRecorder, cacheResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	fn(w, httptest.NewRequest(method, target, nil))

	var resp cacheResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func TestCacheHandler_Stats(t *testing.T) {
	tests := []struct {
		name        string
		pingErr     error
		wantHealthy bool
	}{
		{name: "healthy", wantHealthy: true},
		{name: "unreachable", pingErr: errors.New("dial tcp: connection refused"), wantHealthy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCacheHandler(&fakeCache{pingErr: tt.pingErr}, nil)

			w, resp := serveCache(t, h.Stats, http.MethodGet, RouteCache)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if resp.Cache.Backend != "redis" || resp.Cache.Stats.Hits != 3 || resp.Cache.Stats.HitRate != 75 {
				t.Errorf("cache = %+v", resp.Cache)
			}
			if resp.Cache.Healthy != tt.wantHealthy {
				t.Errorf("healthy = %v, want %v", resp.Cache.Healthy, tt.wantHealthy)
			}
			if !tt.wantHealthy && resp.Cache.HealthError == "" {
				t.Error("healthError is empty for a failed ping")
			}
		})
	}
}

func TestCacheHandler_Clear(t *testing.T) {
	fc := &fakeCache{}
	events := &recordedEvents{}
	h := NewCacheHandler(fc, events)

	w, resp := serveCache(t, h.Clear, http.MethodPost, RouteCacheClear)
	if w.Code != http.StatusOK || !resp.Success || !resp.Cleared {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if fc.cleared != 1 {
		t.Errorf("cleared = %d, want 1", fc.cleared)
	}
	if len(events.created) != 1 || events.created[0].Category != logging.EventCategoryCache {
		t.Errorf("events = %+v, want one cache event", events.created)
	}
}

func TestCacheHandler_ClearError(t *testing.T) {
	h := NewCacheHandler(&fakeCache{clearErr: errors.New("READONLY")}, nil)

	w, resp := serveCache(t, h.Clear, http.MethodPost, RouteCacheClear)
	if w.Code != http.StatusInternalServerError || resp.Success {
		t.Errorf("status = %d, success = %v", w.Code, resp.Success)
	}
}

func TestCacheHandler_NotInitialized(t *testing.T) {
	h := NewCacheHandler(nil, nil)

	for _, fn := range []http.HandlerFunc{h.Stats, h.Clear} {
		w, resp := serveCache(t, fn, http.MethodGet, RouteCache)
		if w.Code != http.StatusServiceUnavailable || resp.Success {
			t.Errorf("status = %d, success = %v", w.Code, resp.Success)
		}
	}
}

func TestCacheHandler_MemoryCache(t *testing.T) {
	s := &stubRules{settings: store.HideRuleSettings{HideModules: "help"}}
	rules := cache.NewHideRuleCache(s, cache.NewMemoryCache(time.Hour, 0), slog.New(slog.DiscardHandler))
	_, _ = rules.HideRules(context.Background(), 1)

	h := NewCacheHandler(rules, nil)
	_, resp := serveCache(t, h.Stats, http.MethodGet, RouteCache)
	if resp.Cache.Backend != "memory" || !resp.Cache.Healthy || resp.Cache.Stats.Items != 1 {
		t.Errorf("cache = %+v, want a healthy memory cache with one item", resp.Cache)
	}

	if _, resp = serveCache(t, h.Clear, http.MethodPost, RouteCacheClear); !resp.Cleared {
		t.Fatal("clear did not succeed")
	}
	if items := rules.Stats().Items; items != 0 {
		t.Errorf("items after clear = %d, want 0", items)
	}
}

type stubRules struct {
	settings store.HideRuleSettings
}

func (s *stubRules) HideRules(context.Context, int64) (store.HideRuleSettings, error) {
	return s.settings, nil
}

func (s *stubRules) SaveHideRules(_ context.Context, _ int64, settings store.HideRuleSettings) error {
	s.settings = settings
	return nil
}
