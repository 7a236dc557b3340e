// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package modmenu builds the admin module menu: an ordered tree of modules,
// their sub-modules, and third-level extension entries.
package modmenu

import "encoding/json"

// Entry is a single node of the module menu tree.
// Empty string fields are considered not set.
type Entry struct {
	Name                      string
	Title                     string
	Link                      string
	OnClick                   string
	Description               string
	Icon                      string // icon identifier, rendered by the caller
	NavigationFrameTarget     string
	NavigationFrameParameters string
	NavigationComponentID     string

	children []*Entry
}

// Children returns the child entries in insertion order.
func (e *Entry) Children() []*Entry {
	return e.children
}

// HasChildren reports whether the entry has at least one child.
func (e *Entry) HasChildren() bool {
	return len(e.children) > 0
}

// Child returns the direct child with the given name.
func (e *Entry) Child(name string) (*Entry, bool) {
	for _, c := range e.children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// AddChild appends child to the entry. Sibling names are unique, so a child
// whose name is already taken is rejected and false is returned.
func (e *Entry) AddChild(child *Entry) bool {
	if child == nil {
		return false
	}
	if _, exists := e.Child(child.Name); exists {
		return false
	}
	e.children = append(e.children, child)
	return true
}

// entryJSON is the wire form of an Entry.
type entryJSON struct {
	Name                      string   `json:"name"`
	Title                     string   `json:"title,omitempty"`
	Link                      string   `json:"link,omitempty"`
	OnClick                   string   `json:"onclick,omitempty"`
	Description               string   `json:"description,omitempty"`
	Icon                      string   `json:"icon,omitempty"`
	NavigationFrameTarget     string   `json:"navigationFrameScript,omitempty"`
	NavigationFrameParameters string   `json:"navigationFrameScriptParam,omitempty"`
	NavigationComponentID     string   `json:"navigationComponentId,omitempty"`
	Children                  []*Entry `json:"children,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Name:                      e.Name,
		Title:                     e.Title,
		Link:                      e.Link,
		OnClick:                   e.OnClick,
		Description:               e.Description,
		Icon:                      e.Icon,
		NavigationFrameTarget:     e.NavigationFrameTarget,
		NavigationFrameParameters: e.NavigationFrameParameters,
		NavigationComponentID:     e.NavigationComponentID,
		Children:                  e.children,
	})
}
