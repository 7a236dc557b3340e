// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package modmenu

// RawModule is a module record as supplied by the module configuration.
// Slices of RawModule keep the order of the configuration mapping they were
// read from; Key holds the mapping key.
type RawModule struct {
	Key                         string
	Name                        string
	Title                       string
	Link                        string
	Path                        string
	OnClick                     string
	Description                 string
	Icon                        string
	NavigationComponentID       string
	NavigationFrameScript       string
	NavigationFrameScriptParam  string
	ParentNavigationFrameScript string
	SubItems                    []RawModule
}

// Extension contributes third-level entries to an existing sub-module.
// Key has the form <mainModule>_<suffix> and names the sub-module that
// receives Functions.
type Extension struct {
	Key       string
	Functions []RawModule
}

// ModuleSource supplies raw module and extension records.
type ModuleSource interface {
	Modules() []RawModule
	Extensions() []Extension
}

// StaticSource is a ModuleSource over fixed records.
type StaticSource struct {
	Raw []RawModule
	Ext []Extension
}

// Modules returns the raw module records.
func (s StaticSource) Modules() []RawModule { return s.Raw }

// Extensions returns the extension records.
func (s StaticSource) Extensions() []Extension { return s.Ext }
