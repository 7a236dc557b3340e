// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package icon keeps the registry of admin icons and renders icon markup.
package icon

import (
	"fmt"
	"html"
	"sync"
)

// Icon sizes.
const (
	SizeSmall   = "small"
	SizeDefault = "default"
	SizeLarge   = "large"
)

// Definition describes a registered icon.
type Definition struct {
	// Source is the URL of the icon image.
	Source string
	// Markup, when set, is inline SVG used instead of Source.
	Markup string
}

// Registry maps icon identifiers to their definitions.
type Registry struct {
	mu    sync.RWMutex
	icons map[string]Definition
}

// NewRegistry creates an empty icon registry.
func NewRegistry() *Registry {
	return &Registry{icons: make(map[string]Definition)}
}

// Register adds or replaces an icon definition.
func (r *Registry) Register(identifier string, def Definition) error {
	if identifier == "" {
		return fmt.Errorf("icon identifier is empty")
	}
	if def.Source == "" && def.Markup == "" {
		return fmt.Errorf("icon %q has neither source nor markup", identifier)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.icons[identifier] = def
	return nil
}

// IsRegistered reports whether identifier is known.
func (r *Registry) IsRegistered(identifier string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.icons[identifier]
	return ok
}

// Render returns the HTML for the icon in the given size, or an empty string
// when the identifier is not registered.
func (r *Registry) Render(identifier, size string) string {
	r.mu.RLock()
	def, ok := r.icons[identifier]
	r.mu.RUnlock()
	if !ok {
		return ""
	}
	if size == "" {
		size = SizeDefault
	}

	inner := def.Markup
	if inner == "" {
		inner = fmt.Sprintf(`<img src="%s" width="16" height="16" alt="">`, html.EscapeString(def.Source))
	}

	return fmt.Sprintf(
		`<span class="t3js-icon icon icon-size-%s" data-identifier="%s"><span class="icon-markup">%s</span></span>`,
		html.EscapeString(size), html.EscapeString(identifier), inner,
	)
}
