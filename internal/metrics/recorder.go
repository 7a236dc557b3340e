// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics provides observability hooks for menu assembly and the
// hide rule cache.
package metrics

import "time"

// CacheResult enumerates hide rule cache lookup outcomes.
type CacheResult string

const (
	CacheHit   CacheResult = "hit"
	CacheMiss  CacheResult = "miss"
	CacheError CacheResult = "error"
)

// Recorder receives menu and cache observations.
type Recorder interface {
	ObserveMenuBuild(lang string, d time.Duration)
	IncCacheLookup(result CacheResult)
	IncHideRuleSave(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveMenuBuild(string, time.Duration) {}
func (NoopRecorder) IncCacheLookup(CacheResult)             {}
func (NoopRecorder) IncHideRuleSave(bool)                   {}
