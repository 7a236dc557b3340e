// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic and service layer functionality.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/ocms-modmenu/internal/i18n"
	"github.com/olegiv/ocms-modmenu/internal/metrics"
	"github.com/olegiv/ocms-modmenu/internal/modmenu"
	"github.com/olegiv/ocms-modmenu/internal/store"
)

// HideRuleSource supplies the stored hide settings of a user.
type HideRuleSource interface {
	HideRules(ctx context.Context, userID int64) (store.HideRuleSettings, error)
}

// ModuleMenuService assembles the module menu of a user.
type ModuleMenuService struct {
	modules    []modmenu.LoadedModule
	extensions []modmenu.Extension
	loader     *modmenu.Loader
	hideRules  HideRuleSource
	logger     *slog.Logger
	recorder   metrics.Recorder
}

// NewModuleMenuService creates a ModuleMenuService. hideRules may be nil, in
// which case nothing is hidden.
func NewModuleMenuService(
	modules []modmenu.LoadedModule,
	extensions []modmenu.Extension,
	loader *modmenu.Loader,
	hideRules HideRuleSource,
	logger *slog.Logger,
) *ModuleMenuService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModuleMenuService{
		modules:    modules,
		extensions: extensions,
		loader:     loader,
		hideRules:  hideRules,
		logger:     logger,
		recorder:   metrics.NoopRecorder{},
	}
}

// SetRecorder sets the metrics recorder. A nil recorder disables metrics.
func (s *ModuleMenuService) SetRecorder(r metrics.Recorder) {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
}

// Rules returns the parsed hide rules of a user.
func (s *ModuleMenuService) Rules(ctx context.Context, userID int64) (modmenu.HideRules, error) {
	if s.hideRules == nil {
		return modmenu.HideRules{}, nil
	}
	settings, err := s.hideRules.HideRules(ctx, userID)
	if err != nil {
		return modmenu.HideRules{}, fmt.Errorf("loading hide rules: %w", err)
	}
	return modmenu.ParseHideRules(settings.HideModules, settings.SubModules), nil
}

// ForUser builds the module menu of userID with labels in lang.
// The returned registry is owned by the caller.
func (s *ModuleMenuService) ForUser(ctx context.Context, userID int64, lang string) (*modmenu.Registry, error) {
	start := time.Now()
	rules, err := s.Rules(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw := s.loader.RawModules(modmenu.FilterLoaded(s.modules, rules))
	src := modmenu.StaticSource{Raw: raw, Ext: s.extensions}

	builder := modmenu.NewBuilder(i18n.Localizer(lang), s.logger)
	reg := builder.Assemble(src, rules)

	s.recorder.ObserveMenuBuild(lang, time.Since(start))
	s.logger.Debug("module menu built", "user_id", userID, "lang", lang, "modules", reg.Len())
	return reg, nil
}
