// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteMetrics is the Prometheus scrape endpoint.
const RouteMetrics = "/metrics"

const namespace = "modmenu"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	menuBuilds    *prom.CounterVec
	buildDuration prom.Histogram
	cacheLookups  *prom.CounterVec
	ruleSaves     *prom.CounterVec
}

// NewPrometheusRecorder creates the metrics and registers them with reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		menuBuilds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "menu_builds_total",
			Help:      "Module menus built, by label language",
		}, []string{"lang"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "menu_build_duration_seconds",
			Help:      "Time to assemble a user's module menu",
			Buckets:   prom.DefBuckets,
		}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "hide_rule_cache_lookups_total",
			Help:      "Hide rule cache lookups by result",
		}, []string{"result"}),
		ruleSaves: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "hide_rule_saves_total",
			Help:      "Hide rule updates by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.menuBuilds, pr.buildDuration, pr.cacheLookups, pr.ruleSaves)
	return pr
}

func (p *PrometheusRecorder) ObserveMenuBuild(lang string, d time.Duration) {
	if p == nil {
		return
	}
	p.menuBuilds.WithLabelValues(lang).Inc()
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCacheLookup(result CacheResult) {
	if p == nil {
		return
	}
	p.cacheLookups.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncHideRuleSave(success bool) {
	if p == nil {
		return
	}
	result := "success"
	if !success {
		result = "failed"
	}
	p.ruleSaves.WithLabelValues(result).Inc()
}

// HTTPHandler serves the metrics of reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

var _ Recorder = (*PrometheusRecorder)(nil)
