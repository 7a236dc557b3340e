// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package modmenu

import (
	"net/url"
	"strconv"
	"strings"
)

// Key prefixes used when converting loaded modules to raw records.
const (
	ModuleKeyPrefix = "modmenu_"
	iconPrefix      = "module-icon-"
	dummyModule     = "dummy"
)

// LoadedModule is a registered top-level backend module.
type LoadedModule struct {
	Name           string
	Script         string
	Title          string // label reference
	Description    string // label reference
	IconIdentifier string
	NavFrameScript string
	// HasSubs is true when the module declares a sub-module section, even
	// an empty one. Modules without it are standalone and link to Script.
	HasSubs bool
	Subs    []LoadedSubModule
}

// LoadedSubModule is a registered sub-module of a LoadedModule.
type LoadedSubModule struct {
	Name                  string
	Script                string
	Title                 string
	Description           string
	IconIdentifier        string
	NavFrameScript        string
	NavFrameScriptParam   string
	NavigationComponentID string
	// InheritNavigationComponentFromMainModule disables inheriting the main
	// module's navigation frame only when explicitly set to false.
	InheritNavigationComponentFromMainModule *bool
}

// IconChecker reports whether an icon identifier is registered.
type IconChecker interface {
	IsRegistered(identifier string) bool
}

// Loader converts loaded module definitions into raw menu records.
type Loader struct {
	basePath string
	icons    IconChecker
}

// NewLoader creates a Loader. basePath is the admin URL under which module
// URLs are built. icons may be nil, in which case no icons are set.
func NewLoader(basePath string, icons IconChecker) *Loader {
	return &Loader{
		basePath: strings.TrimRight(basePath, "/"),
		icons:    icons,
	}
}

// ModuleURL returns the admin URL of the named module.
func (l *Loader) ModuleURL(name string) string {
	return l.basePath + "/" + url.PathEscape(name)
}

// RawModules converts loaded modules to raw records, one per module, keyed
// "modmenu_<name>".
func (l *Loader) RawModules(modules []LoadedModule) []RawModule {
	dummyScript := l.ModuleURL(dummyModule)

	result := make([]RawModule, 0, len(modules))
	for _, m := range modules {
		moduleKey := ModuleKeyPrefix + m.Name
		link := ""
		if !m.HasSubs {
			link = m.Script
		}

		raw := RawModule{
			Key:         moduleKey,
			Name:        m.Name,
			Title:       m.Title,
			OnClick:     goToModule(m.Name),
			Icon:        l.icon(moduleKey, m.IconIdentifier),
			Link:        link,
			Description: m.Description,
		}

		switch {
		case !m.HasSubs && m.Script != dummyScript:
			// A standalone module is listed as its own only sub-module.
			raw.SubItems = []RawModule{{
				Key:         moduleKey,
				Name:        m.Name,
				Title:       m.Title,
				OnClick:     goToModule(m.Name),
				Icon:        raw.Icon,
				Link:        link,
				Description: m.Description,
			}}
		case m.HasSubs:
			for _, sub := range m.Subs {
				raw.SubItems = append(raw.SubItems, l.subRecord(m, moduleKey, sub))
			}
		}

		result = append(result, raw)
	}
	return result
}

func (l *Loader) subRecord(m LoadedModule, moduleKey string, sub LoadedSubModule) RawModule {
	name := m.Name + "_" + sub.Name
	link := sub.Script
	if link == "" {
		link = l.ModuleURL(name)
	}

	rec := RawModule{
		Key:                        name,
		Name:                       name,
		Title:                      sub.Title,
		OnClick:                    goToModule(name),
		Icon:                       l.icon(moduleKey, sub.IconIdentifier),
		Link:                       link,
		Description:                sub.Description,
		NavigationFrameScript:      sub.NavFrameScript,
		NavigationFrameScriptParam: sub.NavFrameScriptParam,
		NavigationComponentID:      sub.NavigationComponentID,
	}

	inherit := sub.InheritNavigationComponentFromMainModule
	if m.NavFrameScript != "" && (inherit == nil || *inherit) {
		rec.ParentNavigationFrameScript = m.NavFrameScript
	}
	return rec
}

// icon returns the identifier to use for a module, or "" when the icon is
// not registered. Without a declared identifier the conventional
// "module-icon-<moduleKey>" is tried.
func (l *Loader) icon(moduleKey, identifier string) string {
	if identifier == "" {
		identifier = iconPrefix + moduleKey
	}
	if l.icons == nil || !l.icons.IsRegistered(identifier) {
		return ""
	}
	return identifier
}

// goToModule returns the client-side call that opens the named module.
func goToModule(name string) string {
	return "top.goToModule(" + quoteJS(name) + ");"
}

// quoteJS quotes s as a single-quoted JavaScript string literal.
func quoteJS(s string) string {
	q := strconv.Quote(s)
	q = strings.ReplaceAll(q[1:len(q)-1], `\"`, `"`)
	q = strings.ReplaceAll(q, "'", `\'`)
	q = strings.ReplaceAll(q, "<", `\x3C`)
	return "'" + q + "'"
}
