// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package modconf reads the admin module configuration file.
//
// The file is YAML with three optional sections:
//
//	modules:        # ordered mapping of module name to definition
//	  web:
//	    title: LLL:mod.web.title
//	    navFrameScript: /admin/pagetree
//	    sub:
//	      list:
//	        script: /admin/module/web_list
//	extensions:     # mapping of <module>_<sub> to third-level functions
//	  web_info:
//	    functions:
//	      - name: web_info_overview
//	        title: LLL:mod.web_info.overview
//	icons:          # icon identifier to source or inline markup
//	  module-icon-modmenu_web:
//	    source: /icons/web.svg
//
// Mapping order is significant and preserved. Values of an unexpected shape
// are treated as absent.
package modconf

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olegiv/ocms-modmenu/internal/icon"
	"github.com/olegiv/ocms-modmenu/internal/modmenu"
)

// ErrNotMapping is returned when the document root is not a mapping.
var ErrNotMapping = errors.New("module configuration must be a mapping")

// IconDef is an icon declared in the configuration file.
type IconDef struct {
	ID     string
	Source string
	Markup string
}

// File is the decoded module configuration.
type File struct {
	Modules    []modmenu.LoadedModule
	Extensions []modmenu.Extension
	Icons      []IconDef
}

// Load reads and parses the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading module configuration: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a configuration document.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	f := &File{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return f, nil
	}
	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	for _, p := range pairs(root) {
		switch p.key {
		case "modules":
			f.Modules = parseModules(p.value)
		case "extensions":
			f.Extensions = parseExtensions(p.value)
		case "icons":
			f.Icons = parseIcons(p.value)
		}
	}
	return f, nil
}

// RegisterIcons adds the declared icons to r.
func (f *File) RegisterIcons(r *icon.Registry) error {
	for _, def := range f.Icons {
		if err := r.Register(def.ID, icon.Definition{Source: def.Source, Markup: def.Markup}); err != nil {
			return fmt.Errorf("registering icon: %w", err)
		}
	}
	return nil
}

func parseModules(n *yaml.Node) []modmenu.LoadedModule {
	var modules []modmenu.LoadedModule
	for _, p := range pairs(n) {
		fields := pairs(p.value)
		m := modmenu.LoadedModule{
			Name:           p.key,
			Script:         stringField(fields, "script"),
			Title:          stringField(fields, "title"),
			Description:    stringField(fields, "description"),
			IconIdentifier: stringField(fields, "iconIdentifier"),
			NavFrameScript: stringField(fields, "navFrameScript"),
		}
		if sub := field(fields, "sub"); sub != nil && sub.Kind == yaml.MappingNode {
			m.HasSubs = true
			for _, sp := range pairs(sub) {
				m.Subs = append(m.Subs, parseSubModule(sp.key, pairs(sp.value)))
			}
		}
		modules = append(modules, m)
	}
	return modules
}

func parseSubModule(name string, fields []pair) modmenu.LoadedSubModule {
	return modmenu.LoadedSubModule{
		Name:                                     name,
		Script:                                   stringField(fields, "script"),
		Title:                                    stringField(fields, "title"),
		Description:                              stringField(fields, "description"),
		IconIdentifier:                           stringField(fields, "iconIdentifier"),
		NavFrameScript:                           stringField(fields, "navFrameScript"),
		NavFrameScriptParam:                      stringField(fields, "navFrameScriptParam"),
		NavigationComponentID:                    stringField(fields, "navigationComponentId"),
		InheritNavigationComponentFromMainModule: boolField(fields, "inheritNavigationComponentFromMainModule"),
	}
}

func parseExtensions(n *yaml.Node) []modmenu.Extension {
	var extensions []modmenu.Extension
	for _, p := range pairs(n) {
		ext := modmenu.Extension{Key: p.key}
		functions := field(pairs(p.value), "functions")
		if functions == nil {
			extensions = append(extensions, ext)
			continue
		}
		switch functions.Kind {
		case yaml.SequenceNode:
			for _, item := range functions.Content {
				if item = resolve(item); item.Kind == yaml.MappingNode {
					ext.Functions = append(ext.Functions, parseRecord("", pairs(item)))
				}
			}
		case yaml.MappingNode:
			for _, fp := range pairs(functions) {
				if fp.value.Kind == yaml.MappingNode {
					ext.Functions = append(ext.Functions, parseRecord(fp.key, pairs(fp.value)))
				}
			}
		}
		extensions = append(extensions, ext)
	}
	return extensions
}

// parseRecord decodes a raw menu record as used by extension functions.
func parseRecord(key string, fields []pair) modmenu.RawModule {
	return modmenu.RawModule{
		Key:                        key,
		Name:                       stringField(fields, "name"),
		Title:                      stringField(fields, "title"),
		Link:                       stringField(fields, "link"),
		Path:                       stringField(fields, "path"),
		OnClick:                    stringField(fields, "onclick"),
		Description:                stringField(fields, "description"),
		Icon:                       stringField(fields, "icon"),
		NavigationComponentID:      stringField(fields, "navigationComponentId"),
		NavigationFrameScript:      stringField(fields, "navigationFrameScript"),
		NavigationFrameScriptParam: stringField(fields, "navigationFrameScriptParam"),
	}
}

func parseIcons(n *yaml.Node) []IconDef {
	var icons []IconDef
	for _, p := range pairs(n) {
		fields := pairs(p.value)
		icons = append(icons, IconDef{
			ID:     p.key,
			Source: stringField(fields, "source"),
			Markup: stringField(fields, "markup"),
		})
	}
	return icons
}
