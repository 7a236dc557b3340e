// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package modmenu

import (
	"slices"
	"strings"
)

// HideRules lists modules a user does not want to see in the menu.
type HideRules struct {
	// Modules are top-level module names to remove entirely.
	Modules []string
	// SubModules maps a top-level module name to sub-module names to remove.
	SubModules map[string][]string
}

// IsZero reports whether the rules hide nothing.
func (h HideRules) IsZero() bool {
	return len(h.Modules) == 0 && len(h.SubModules) == 0
}

// ParseHideRules converts the stored comma-separated form into HideRules.
// value lists top-level modules; properties maps a module name to its
// hidden sub-modules. Blank names are ignored.
func ParseHideRules(value string, properties map[string]string) HideRules {
	rules := HideRules{Modules: splitList(value)}
	for mainModule, subModules := range properties {
		names := splitList(subModules)
		if len(names) == 0 {
			continue
		}
		if rules.SubModules == nil {
			rules.SubModules = make(map[string][]string)
		}
		rules.SubModules[strings.TrimSpace(mainModule)] = names
	}
	return rules
}

func splitList(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// FilterHidden returns the raw modules without the entries hidden by rules.
// Records match by Name only, never by mapping key. A sub-record also
// matches by its name with the "<parent>_" prefix removed. Rules that match
// nothing are ignored. The input slice is not modified.
func FilterHidden(modules []RawModule, rules HideRules) []RawModule {
	result := make([]RawModule, 0, len(modules))
	for _, m := range modules {
		if matchesAny(rules.Modules, m.Name) {
			continue
		}
		hiddenSubs := rules.SubModules[m.Name]
		if len(hiddenSubs) > 0 && len(m.SubItems) > 0 {
			subs := make([]RawModule, 0, len(m.SubItems))
			for _, sub := range m.SubItems {
				short := strings.TrimPrefix(sub.Name, m.Name+"_")
				if matchesAny(hiddenSubs, sub.Name, short) {
					continue
				}
				subs = append(subs, sub)
			}
			m.SubItems = subs
		}
		result = append(result, m)
	}
	return result
}

// FilterLoaded removes hidden modules and sub-modules from loaded module
// definitions before they are converted to raw records.
func FilterLoaded(modules []LoadedModule, rules HideRules) []LoadedModule {
	result := make([]LoadedModule, 0, len(modules))
	for _, m := range modules {
		if slices.Contains(rules.Modules, m.Name) {
			continue
		}
		if hidden := rules.SubModules[m.Name]; len(hidden) > 0 && len(m.Subs) > 0 {
			subs := make([]LoadedSubModule, 0, len(m.Subs))
			for _, sub := range m.Subs {
				if !slices.Contains(hidden, sub.Name) {
					subs = append(subs, sub)
				}
			}
			m.Subs = subs
		}
		result = append(result, m)
	}
	return result
}

func matchesAny(names []string, candidates ...string) bool {
	for _, c := range candidates {
		if c != "" && slices.Contains(names, c) {
			return true
		}
	}
	return false
}
