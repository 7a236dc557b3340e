// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package modmenu

import (
	"log/slog"
	"strings"
)

// Localizer resolves a label reference to its display string.
type Localizer interface {
	Resolve(key string) string
}

// LocalizerFunc adapts a function to the Localizer interface.
type LocalizerFunc func(key string) string

// Resolve calls f(key).
func (f LocalizerFunc) Resolve(key string) string { return f(key) }

// identity returns labels unchanged.
var identity = LocalizerFunc(func(key string) string { return key })

// Builder turns raw module records into a Registry.
type Builder struct {
	localizer Localizer
	logger    *slog.Logger
}

// NewBuilder creates a Builder. A nil localizer leaves labels untouched,
// a nil logger discards log output.
func NewBuilder(localizer Localizer, logger *slog.Logger) *Builder {
	if localizer == nil {
		localizer = identity
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{
		localizer: localizer,
		logger:    logger,
	}
}

// Assemble runs the complete pipeline for src: hide filtering, tree
// construction and the extension pass.
func (b *Builder) Assemble(src ModuleSource, rules HideRules) *Registry {
	reg := b.Build(FilterHidden(src.Modules(), rules))
	b.MergeExtensions(reg, src.Extensions())
	return reg
}

// Build creates a Registry from raw module records. Top-level entries and
// their sub-entries keep the order of modules.
func (b *Builder) Build(modules []RawModule) *Registry {
	reg := NewRegistry()
	for _, m := range modules {
		entry := b.NewEntry(m)
		for _, sub := range m.SubItems {
			if !entry.AddChild(b.NewEntry(sub)) {
				b.logger.Debug("duplicate sub-module skipped", "module", entry.Name, "name", sub.Name)
			}
		}
		reg.Attach(entry)
	}
	return reg
}

// NewEntry maps a single raw record to an Entry. Only non-empty fields are
// copied; sub-items are not visited.
func (b *Builder) NewEntry(m RawModule) *Entry {
	e := &Entry{
		Name:                      m.Name,
		OnClick:                   m.OnClick,
		Icon:                      m.Icon,
		NavigationComponentID:     m.NavigationComponentID,
		NavigationFrameParameters: m.NavigationFrameScriptParam,
	}
	if m.Title != "" {
		e.Title = b.localizer.Resolve(m.Title)
	}
	if m.Description != "" {
		e.Description = b.localizer.Resolve(m.Description)
	}

	switch {
	case m.Link != "":
		e.Link = m.Link
	case m.Path != "":
		e.Link = m.Path
	}

	switch {
	case m.NavigationFrameScript != "":
		e.NavigationFrameTarget = m.NavigationFrameScript
	case m.ParentNavigationFrameScript != "":
		e.NavigationFrameTarget = m.ParentNavigationFrameScript
	}

	return e
}

// MergeExtensions attaches third-level entries to the sub-modules named by
// the extension keys. A key whose main module is unknown or has no children,
// or whose full name matches no entry, is skipped.
//
// MergeExtensions is meant to run once per registry.
func (b *Builder) MergeExtensions(reg *Registry, extensions []Extension) {
	for _, ext := range extensions {
		mainName, _, _ := strings.Cut(ext.Key, "_")

		mainEntry, ok := reg.FindByName(mainName)
		if !ok {
			b.logger.Debug("extension skipped, unknown module", "key", ext.Key, "module", mainName)
			continue
		}
		if !mainEntry.HasChildren() {
			b.logger.Debug("extension skipped, module has no sub-modules", "key", ext.Key, "module", mainName)
			continue
		}

		target, ok := reg.FindByName(ext.Key)
		if !ok {
			b.logger.Debug("extension skipped, unknown sub-module", "key", ext.Key)
			continue
		}
		for _, fn := range ext.Functions {
			if !target.AddChild(b.NewEntry(fn)) {
				b.logger.Debug("duplicate extension entry skipped", "key", ext.Key, "name", fn.Name)
			}
		}
	}
}
